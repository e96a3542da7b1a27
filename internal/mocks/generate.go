package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/club --output domain/club --outpkg clubmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/matchlog --output domain/matchlog --outpkg matchlogmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Generator --dir ../domain/content --output domain/content --outpkg contentmock --filename generator_mock.go
