// internal/repository/mock_gen.go
package repository

//go:generate mockgen -typed -source=./application.go -destination=../mocks/mock_application_repository.go -package=mocks ApplicationRepositoryIface
