package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/auth"
)

func testLogger() zerolog.Logger { return zerolog.Nop() }

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

// fakeEmailSender records every notification instead of sending it.
type fakeEmailSender struct {
	mu          sync.Mutex
	statusSent  []string // "email:status"
	modSent     []string // "email:status"
	inviteSent  []string // "email:code"
	resetSent   []string // "email:token"
	welcomeSent []string
}

func (f *fakeEmailSender) SendReportStatusEmail(toEmail, toName, reportTitle, newStatus, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusSent = append(f.statusSent, toEmail+":"+newStatus)
	return nil
}

func (f *fakeEmailSender) SendThreadModerationEmail(toEmail, toName, threadTitle, newStatus, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modSent = append(f.modSent, toEmail+":"+newStatus)
	return nil
}

func (f *fakeEmailSender) SendInviteEmail(toEmail, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inviteSent = append(f.inviteSent, toEmail+":"+code)
	return nil
}

func (f *fakeEmailSender) SendPasswordResetEmail(toEmail, toName, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetSent = append(f.resetSent, toEmail+":"+token)
	return nil
}

func (f *fakeEmailSender) SendWelcomeEmail(toEmail, toName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomeSent = append(f.welcomeSent, toEmail)
	return nil
}

// fakeInviteRepo is an in-memory IInviteRepository.
type fakeInviteRepo struct {
	mu      sync.Mutex
	invites map[string]*models.WorkerInvite
	nextID  int
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*models.WorkerInvite)}
}

func (f *fakeInviteRepo) Create(ctx context.Context, invite *models.WorkerInvite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	invite.ID = fmt.Sprintf("invite-%d", f.nextID)
	invite.CreatedAt = time.Now()
	cp := *invite
	f.invites[invite.ID] = &cp
	return nil
}

func (f *fakeInviteRepo) GetByCode(ctx context.Context, code string) (*models.WorkerInvite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, invite := range f.invites {
		if invite.Code == code {
			cp := *invite
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInviteRepo) GetAll(ctx context.Context) ([]models.WorkerInvite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.WorkerInvite, 0, len(f.invites))
	for _, invite := range f.invites {
		out = append(out, *invite)
	}
	return out, nil
}

func (f *fakeInviteRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.invites[id]; !ok {
		return apperrors.NewResourceNotFoundError("invite not found")
	}
	delete(f.invites, id)
	return nil
}

func (f *fakeInviteRepo) CountUnused(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, invite := range f.invites {
		if !invite.IsUsed && invite.ExpiresAt.After(time.Now()) {
			n++
		}
	}
	return n, nil
}

func (f *fakeInviteRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, invite := range f.invites {
		if invite.IsUsed || !invite.ExpiresAt.After(time.Now()) {
			delete(f.invites, id)
			n++
		}
	}
	return n, nil
}

// consume marks an invite used; it mirrors the conditional UPDATE the real
// repository runs inside the signup transaction.
func (f *fakeInviteRepo) consume(inviteID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	invite, ok := f.invites[inviteID]
	if !ok {
		return apperrors.ErrInvalidInviteCode
	}
	if invite.IsUsed {
		return apperrors.ErrInviteAlreadyUsed
	}
	invite.IsUsed = true
	invite.UsedBy = &userID
	return nil
}

// fakeUserRepo is an in-memory IUserRepository.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	invites *fakeInviteRepo
	nextID  int
}

func newFakeUserRepo(invites *fakeInviteRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), invites: invites}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createLocked(user)
}

func (f *fakeUserRepo) createLocked(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) CreateWorkerWithInvite(ctx context.Context, user *models.User, inviteID string) error {
	f.mu.Lock()
	if err := f.createLocked(user); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	if err := f.invites.consume(inviteID, user.ID); err != nil {
		// The real store rolls the whole transaction back
		f.mu.Lock()
		delete(f.users, user.ID)
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID, name, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Name = name
	user.Email = email
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, userID string, role models.RoleType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.RoleType = role
	return nil
}

func (f *fakeUserRepo) UpdateActive(ctx context.Context, userID string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsActive = active
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context, role, search *string, page, pageSize int) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		if role != nil && string(user.RoleType) != *role {
			continue
		}
		if search != nil && !strings.Contains(user.Name, *search) && !strings.Contains(user.Email, *search) {
			continue
		}
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int64)
	for _, user := range f.users {
		counts[string(user.RoleType)]++
	}
	return counts, nil
}

// fakeTokenRepo is an in-memory ITokenRepository.
type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*refreshTokenRow
}

type refreshTokenRow struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*refreshTokenRow)}
}

func (f *fakeTokenRepo) CreateToken(ctx context.Context, token, userID string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &refreshTokenRow{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeTokenRepo) GetTokenByValue(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.tokens[token]
	if !ok {
		return "", apperrors.ErrTokenNotFound
	}
	if row.revoked {
		return "", apperrors.ErrTokenRevoked
	}
	if !row.expiresAt.After(time.Now()) {
		return "", apperrors.ErrTokenExpired
	}
	return row.userID, nil
}

func (f *fakeTokenRepo) RevokeToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	row.revoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.tokens {
		if row.userID == userID {
			row.revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for token, row := range f.tokens {
		if !row.expiresAt.After(time.Now()) {
			delete(f.tokens, token)
			n++
		}
	}
	return n, nil
}

// fakeResetRepo is an in-memory IPasswordResetTokenRepository.
type fakeResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*resetTokenRow
}

type resetTokenRow struct {
	userID    string
	expiresAt time.Time
	used      bool
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*resetTokenRow)}
}

func (f *fakeResetRepo) CreateToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &resetTokenRow{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeResetRepo) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.tokens[token]
	if !ok || !row.expiresAt.After(time.Now()) {
		return "", apperrors.ErrInvalidPasswordResetToken
	}
	if row.used {
		return "", apperrors.ErrPasswordResetTokenUsed
	}
	return row.userID, nil
}

func (f *fakeResetRepo) MarkTokenUsed(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrInvalidPasswordResetToken
	}
	row.used = true
	return nil
}

func (f *fakeResetRepo) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for token, row := range f.tokens {
		if !row.expiresAt.After(time.Now()) {
			delete(f.tokens, token)
			n++
		}
	}
	return n, nil
}

// fakeReportRepo is an in-memory IReportRepository. Claim mirrors the real
// repository's conditional UPDATE under a single lock.
type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*models.Report
	users   map[string]*models.User
	nextID  int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		reports: make(map[string]*models.Report),
		users:   make(map[string]*models.User),
	}
}

func (f *fakeReportRepo) Create(ctx context.Context, report *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	report.ID = fmt.Sprintf("report-%d", f.nextID)
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *fakeReportRepo) GetByID(ctx context.Context, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("report not found")
	}
	cp := *report
	if user, ok := f.users[report.CreatedBy]; ok {
		u := *user
		cp.CreatedByProfile = &u
	}
	if report.AssignedTo != nil {
		if user, ok := f.users[*report.AssignedTo]; ok {
			u := *user
			cp.AssignedToProfile = &u
		}
	}
	return &cp, nil
}

func (f *fakeReportRepo) GetAll(ctx context.Context, scope lifecycle.ReportScope, status, reportType *string, page, pageSize int) ([]models.Report, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Report, 0, len(f.reports))
	for _, report := range f.reports {
		if !scope.Allows(report) {
			continue
		}
		if status != nil && string(report.Status) != *status {
			continue
		}
		if reportType != nil && string(report.Type) != *reportType {
			continue
		}
		out = append(out, *report)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReportRepo) Claim(ctx context.Context, reportID, workerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[reportID]
	if !ok || report.Status != models.ReportStatusApproved || report.AssignedTo != nil {
		return apperrors.NewConflictError("report is already assigned to another worker")
	}
	report.Status = models.ReportStatusInProgress
	report.AssignedTo = &workerID
	report.UpdatedAt = time.Now()
	return nil
}

func (f *fakeReportRepo) ApplyOutcome(ctx context.Context, reportID string, outcome lifecycle.ReportOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[reportID]
	if !ok {
		return apperrors.NewResourceNotFoundError("report not found")
	}
	report.Status = outcome.Status
	if outcome.AssignTo != nil {
		report.AssignedTo = outcome.AssignTo
	}
	if outcome.ResolutionDetails != nil {
		report.ResolutionDetails = outcome.ResolutionDetails
		report.ResolutionImages = outcome.ResolutionImages
	}
	if outcome.Comment != nil {
		report.Comment = outcome.Comment
	}
	report.UpdatedAt = time.Now()
	return nil
}

func (f *fakeReportRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[id]; !ok {
		return apperrors.NewResourceNotFoundError("report not found")
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int64)
	for _, report := range f.reports {
		counts[string(report.Status)]++
	}
	return counts, nil
}

// fakeThreadRepo is an in-memory IThreadRepository.
type fakeThreadRepo struct {
	mu      sync.Mutex
	threads map[string]*models.ForumThread
	users   map[string]*models.User
	nextID  int
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{
		threads: make(map[string]*models.ForumThread),
		users:   make(map[string]*models.User),
	}
}

func (f *fakeThreadRepo) Create(ctx context.Context, thread *models.ForumThread) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	thread.ID = fmt.Sprintf("thread-%d", f.nextID)
	thread.CreatedAt = time.Now()
	thread.UpdatedAt = thread.CreatedAt
	cp := *thread
	f.threads[thread.ID] = &cp
	return nil
}

func (f *fakeThreadRepo) GetByID(ctx context.Context, id string) (*models.ForumThread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread, ok := f.threads[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("thread not found")
	}
	cp := *thread
	if user, ok := f.users[thread.CreatedBy]; ok {
		u := *user
		cp.Author = &u
	}
	return &cp, nil
}

func (f *fakeThreadRepo) GetAll(ctx context.Context, status, tag *string, viewerID string, viewerIsAdmin bool, page, pageSize int) ([]models.ForumThread, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ForumThread, 0, len(f.threads))
	for _, thread := range f.threads {
		if !viewerIsAdmin && thread.Status != models.ThreadStatusApproved && thread.CreatedBy != viewerID {
			continue
		}
		if status != nil && string(thread.Status) != *status {
			continue
		}
		if tag != nil {
			found := false
			for _, t := range thread.Tags {
				if t == *tag {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *thread)
	}
	return out, int64(len(out)), nil
}

func (f *fakeThreadRepo) ApplyModeration(ctx context.Context, threadID string, status models.ThreadStatus, comment *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread, ok := f.threads[threadID]
	if !ok {
		return apperrors.NewResourceNotFoundError("thread not found")
	}
	thread.Status = status
	thread.Comment = comment
	thread.UpdatedAt = time.Now()
	return nil
}

func (f *fakeThreadRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.threads[id]; !ok {
		return apperrors.NewResourceNotFoundError("thread not found")
	}
	delete(f.threads, id)
	return nil
}

func (f *fakeThreadRepo) CountPending(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, thread := range f.threads {
		if thread.Status == models.ThreadStatusPending {
			n++
		}
	}
	return n, nil
}

func (f *fakeThreadRepo) adjustCommentCount(threadID string, delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread, ok := f.threads[threadID]
	if !ok {
		return
	}
	thread.CommentCount += delta
	if thread.CommentCount < 0 {
		thread.CommentCount = 0
	}
}

// fakeCommentRepo is an in-memory ICommentRepository. The thread counter
// moves with every comment write, like the real transactional repository.
type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*models.ForumComment
	threads  *fakeThreadRepo
	nextID   int
}

func newFakeCommentRepo(threads *fakeThreadRepo) *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[string]*models.ForumComment),
		threads:  threads,
	}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *models.ForumComment) error {
	f.mu.Lock()
	f.nextID++
	comment.ID = fmt.Sprintf("comment-%d", f.nextID)
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	f.comments[comment.ID] = &cp
	f.mu.Unlock()

	f.threads.adjustCommentCount(comment.ThreadID, 1)
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*models.ForumComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("comment not found")
	}
	cp := *comment
	return &cp, nil
}

func (f *fakeCommentRepo) GetByThread(ctx context.Context, threadID string, page, pageSize int) ([]models.ForumComment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ForumComment, 0)
	for _, comment := range f.comments {
		if comment.ThreadID == threadID {
			out = append(out, *comment)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	comment, ok := f.comments[id]
	if !ok {
		f.mu.Unlock()
		return apperrors.NewResourceNotFoundError("comment not found")
	}
	threadID := comment.ThreadID
	delete(f.comments, id)
	f.mu.Unlock()

	f.threads.adjustCommentCount(threadID, -1)
	return nil
}
