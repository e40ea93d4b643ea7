package repositories

import (
	"github.com/dheeraj5988/sustainable-cities/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	ReportRepository             *ReportRepository
	ThreadRepository             *ThreadRepository
	CommentRepository            *CommentRepository
	InviteRepository             *InviteRepository
	TokenRepository              *TokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(database),
		ReportRepository:             NewReportRepository(database),
		ThreadRepository:             NewThreadRepository(database),
		CommentRepository:            NewCommentRepository(database),
		InviteRepository:             NewInviteRepository(database),
		TokenRepository:              NewTokenRepository(database),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(database),
	}
}
