package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/lbarasti/chess-social/lichess"
	"github.com/lbarasti/chess-social/models"
	"github.com/lbarasti/chess-social/repositories"
	"github.com/lbarasti/chess-social/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxRunner hands the callback a nil executor; the in-memory repositories
// below ignore it. A non-nil err fails the transaction without invoking fn.
type fakeTxRunner struct {
	err   error
	calls int
}

func (r *fakeTxRunner) RunInTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return fn(nil)
}

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament

	createErr        error
	getErr           error
	completionWrites []bool
	deleted          []string
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
	for _, tournament := range tournaments {
		repo.tournaments[tournament.ID] = tournament
	}
	return repo
}

func (r *fakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *tournament
	r.tournaments[tournament.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *tournament
	return &copied, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, tournament := range r.tournaments {
		out = append(out, *tournament)
	}
	return out, nil
}

func (r *fakeTournamentRepo) UpdateCompletion(ctx context.Context, exec repositories.SQLExecutor, id string, complete bool) error {
	tournament, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	tournament.IsComplete = complete
	r.completionWrites = append(r.completionWrites, complete)
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeMatchRepo struct {
	matches []models.Match

	createErr error
	updateErr error
	listErr   error
}

func (r *fakeMatchRepo) CreateAll(ctx context.Context, exec repositories.SQLExecutor, matches []models.Match) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.matches = append(r.matches, matches...)
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id string) (*models.Match, error) {
	for i := range r.matches {
		if r.matches[i].ID == id {
			copied := r.matches[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) ([]models.Match, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Match, 0)
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, exec repositories.SQLExecutor, id string, update repositories.MatchUpdate) (*models.Match, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i := range r.matches {
		if r.matches[i].ID != id {
			continue
		}
		if update.SetResult {
			r.matches[i].Result = update.Result
		}
		if update.SetGameLink {
			r.matches[i].GameLink = update.GameLink
		}
		copied := r.matches[i]
		return &copied, nil
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) error {
	kept := r.matches[:0]
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			kept = append(kept, m)
		}
	}
	r.matches = kept
	return nil
}

type fakePlayerRepo struct {
	players map[string]models.Player

	upsertErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]models.Player)}
}

func (r *fakePlayerRepo) UpsertAll(ctx context.Context, exec repositories.SQLExecutor, players []models.Player) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for _, p := range players {
		r.players[p.ID] = p
	}
	return nil
}

func (r *fakePlayerRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Player, error) {
	out := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeVerifier struct {
	account *lichess.Account
	err     error
	calls   int
}

func (v *fakeVerifier) VerifyToken(ctx context.Context, token string) (*lichess.Account, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.account, nil
}

type broadcastEvent struct {
	tournamentID string
	eventType    string
}

type fakeNotifier struct {
	events []broadcastEvent
}

func (n *fakeNotifier) Broadcast(tournamentID string, eventType string, payload interface{}) {
	n.events = append(n.events, broadcastEvent{tournamentID: tournamentID, eventType: eventType})
}

type fakeUploader struct {
	uploads []string
	deletes []string
	err     error
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.uploads = append(u.uploads, key)
	return &storage.UploadResult{Key: key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	if u.err != nil {
		return u.err
	}
	u.deletes = append(u.deletes, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://files.test/" + key
}

type fakeChallengeClient struct {
	challenge *lichess.Challenge
	err       error

	token    string
	opponent string
	color    string
	settings *models.ChallengeSettings
}

func (c *fakeChallengeClient) CreateChallenge(ctx context.Context, token, opponent, color string, settings *models.ChallengeSettings) (*lichess.Challenge, error) {
	c.token, c.opponent, c.color, c.settings = token, opponent, color, settings
	if c.err != nil {
		return nil, c.err
	}
	return c.challenge, nil
}

type fakeSearcher struct {
	usernames []string
	err       error
}

func (s *fakeSearcher) AutocompleteUsernames(ctx context.Context, term string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.usernames, nil
}
