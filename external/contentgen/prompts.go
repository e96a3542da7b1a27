package contentgen

import (
	"strconv"

	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/valyala/bytebufferpool"
)

const (
	squadSize  = 11
	marketSize = 8
)

func squadPrompt(clubName string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Gere um elenco fictício de ")
	_, _ = buf.WriteString(strconv.Itoa(squadSize))
	_, _ = buf.WriteString(" jogadores para o clube brasileiro ")
	_, _ = buf.WriteString(clubName)
	_, _ = buf.WriteString(". Use posições GK, DEF, MID ou ATT, rating entre 60 e 90, idade entre 17 e 36 ")
	_, _ = buf.WriteString("e valor de mercado em milhões entre 1 e 30.")
	return buf.String()
}

func marketPrompt(excludeClub string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Liste ")
	_, _ = buf.WriteString(strconv.Itoa(marketSize))
	_, _ = buf.WriteString(" jogadores fictícios disponíveis no mercado de transferências do futebol brasileiro")
	if excludeClub != "" {
		_, _ = buf.WriteString(", nenhum deles do ")
		_, _ = buf.WriteString(excludeClub)
	}
	_, _ = buf.WriteString(". Informe o clube atual em team, posição GK, DEF, MID ou ATT, rating entre 65 e 92 ")
	_, _ = buf.WriteString("e valor em milhões entre 2 e 40.")
	return buf.String()
}

func matchPrompt(brief match.Brief) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Narre uma partida do campeonato brasileiro entre ")
	_, _ = buf.WriteString(brief.HomeClub)
	_, _ = buf.WriteString(" (mandante) e ")
	_, _ = buf.WriteString(brief.AwayClub)
	_, _ = buf.WriteString(" (visitante). Média de rating do mandante: ")
	_, _ = buf.WriteString(strconv.FormatFloat(brief.AverageRating, 'f', 1, 64))
	_, _ = buf.WriteString(".")
	if len(brief.TopPlayers) > 0 {
		_, _ = buf.WriteString(" Destaques do mandante:")
		for i, p := range brief.TopPlayers {
			if i > 0 {
				_ = buf.WriteByte(',')
			}
			_ = buf.WriteByte(' ')
			_, _ = buf.WriteString(p.Name)
			_, _ = buf.WriteString(" (")
			_, _ = buf.WriteString(string(p.Position))
			_, _ = buf.WriteString(", ")
			_, _ = buf.WriteString(strconv.Itoa(p.Rating))
			_ = buf.WriteByte(')')
		}
		_ = buf.WriteByte('.')
	}
	_, _ = buf.WriteString(" Devolva o placar, um resumo curto e os principais lances com minuto, tipo e lado.")
	return buf.String()
}

func scoutPrompt(name string, position player.Position) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Escreva um relatório de olheiro, em até três frases, sobre a peneira amadora de ")
	_, _ = buf.WriteString(name)
	_, _ = buf.WriteString(", que joga como ")
	_, _ = buf.WriteString(position.Label())
	_, _ = buf.WriteString(".")
	return buf.String()
}
