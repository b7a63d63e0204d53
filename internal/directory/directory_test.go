package directory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ignatzorin/skill-connector/internal/goroutine"
	"github.com/ignatzorin/skill-connector/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockFetcher — фейковый бэкенд для агрегатора.
type mockFetcher struct {
	users    []models.User
	usersErr error
	skills   map[uuid.UUID][]models.Skill
	failing  map[uuid.UUID]error
	panicFor uuid.UUID
	delay    time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (m *mockFetcher) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.users, m.usersErr
}

func (m *mockFetcher) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxInFlight.Load()
		if n <= cur || m.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if userID == m.panicFor {
		panic("skills decoder exploded")
	}
	if err, ok := m.failing[userID]; ok {
		return nil, err
	}
	return m.skills[userID], nil
}

func strPtr(s string) *string { return &s }

func newUser(name string) models.User {
	return models.User{ID: uuid.New(), FullName: name, Email: name + "@example.com", IsActive: true}
}

func newSkill(userID uuid.UUID, name, category string) models.Skill {
	return models.Skill{ID: uuid.New(), UserID: userID, CategoryID: uuid.New(), CategoryName: category, SkillName: name, Currency: "USD"}
}

func TestAggregate_PreservesOrderAndTagsFailures(t *testing.T) {
	alice, bob, carol := newUser("Alice"), newUser("Bob"), newUser("Carol")
	f := &mockFetcher{
		users: []models.User{alice, bob, carol},
		skills: map[uuid.UUID][]models.Skill{
			alice.ID: {newSkill(alice.ID, "Plumbing", "Home")},
			carol.ID: {newSkill(carol.ID, "Logo design", "Design")},
		},
		failing: map[uuid.UUID]error{bob.ID: errors.New("connection reset")},
	}

	res, err := Aggregate(context.Background(), f, Options{FanoutLimit: 2})
	require.NoError(t, err)

	require.Len(t, res.Professionals, 3)
	assert.Equal(t, "Alice", res.Professionals[0].User.FullName)
	assert.Equal(t, "Bob", res.Professionals[1].User.FullName)
	assert.Equal(t, "Carol", res.Professionals[2].User.FullName)

	assert.Len(t, res.Professionals[0].Skills, 1)
	assert.Empty(t, res.Professionals[1].Skills)
	assert.NotNil(t, res.Professionals[1].Skills)
	assert.Len(t, res.Professionals[2].Skills, 1)

	require.True(t, res.Partial())
	require.Len(t, res.Failures, 1)
	assert.Equal(t, bob.ID, res.Failures[0].UserID)
	assert.EqualError(t, res.Failures[0].Err, "connection reset")
}

func TestAggregate_RecoversPanic(t *testing.T) {
	alice, bob := newUser("Alice"), newUser("Bob")
	f := &mockFetcher{
		users:    []models.User{alice, bob},
		skills:   map[uuid.UUID][]models.Skill{alice.ID: {newSkill(alice.ID, "Tiling", "Home")}},
		panicFor: bob.ID,
	}

	res, err := Aggregate(context.Background(), f, Options{})
	require.NoError(t, err)
	require.Len(t, res.Failures, 1)

	var panicErr *goroutine.PanicError
	assert.ErrorAs(t, res.Failures[0].Err, &panicErr)
	assert.Len(t, res.Professionals[0].Skills, 1)
}

func TestAggregate_UsersErrorIsFatal(t *testing.T) {
	f := &mockFetcher{usersErr: errors.New("backend down")}

	res, err := Aggregate(context.Background(), f, Options{})
	assert.Nil(t, res)
	assert.ErrorContains(t, err, "backend down")
}

func TestAggregate_RespectsFanoutLimit(t *testing.T) {
	users := make([]models.User, 20)
	for i := range users {
		users[i] = newUser("user")
	}
	f := &mockFetcher{users: users, delay: 5 * time.Millisecond}

	_, err := Aggregate(context.Background(), f, Options{FanoutLimit: 3})
	require.NoError(t, err)
	assert.LessOrEqual(t, f.maxInFlight.Load(), int32(3))
	assert.Positive(t, f.maxInFlight.Load())
}

func TestAggregate_CancelledContext(t *testing.T) {
	users := make([]models.User, 10)
	for i := range users {
		users[i] = newUser("user")
	}
	f := &mockFetcher{users: users, delay: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	res, err := Aggregate(ctx, f, Options{FanoutLimit: 2})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregate_ResolvesCategoryNames(t *testing.T) {
	alice := newUser("Alice")
	designID := uuid.New()
	skill := newSkill(alice.ID, "Branding", "")
	skill.CategoryID = designID

	f := &mockFetcher{
		users:  []models.User{alice},
		skills: map[uuid.UUID][]models.Skill{alice.ID: {skill}},
	}

	res, err := Aggregate(context.Background(), f, Options{
		Categories: NewCategoryIndex([]models.Category{{ID: designID, Name: "Design"}}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Design", res.Professionals[0].Skills[0].CategoryName)
}

func sampleDirectory() []Professional {
	plumber := newUser("Mario Rossi")
	designer := newUser("Dana Lee")
	nobody := newUser("Plumbing Fan")
	designerSkill := newSkill(designer.ID, "Logo design", "Design")
	designerSkill.Description = strPtr("Brand identity and posters")

	return []Professional{
		{User: plumber, Skills: []models.Skill{newSkill(plumber.ID, "Plumbing", "Home Services")}},
		{User: nobody, Skills: []models.Skill{}},
		{User: designer, Skills: []models.Skill{designerSkill}},
	}
}

func TestFilter(t *testing.T) {
	dir := sampleDirectory()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "пустой запрос и all", query: Query{Category: "all"}, want: []string{"Mario Rossi", "Dana Lee"}},
		{name: "пустая категория", query: Query{}, want: []string{"Mario Rossi", "Dana Lee"}},
		{name: "по названию навыка", query: Query{Text: "plumb", Category: "all"}, want: []string{"Mario Rossi"}},
		{name: "регистр и пробелы", query: Query{Text: "  PLUMB  "}, want: []string{"Mario Rossi"}},
		{name: "по имени", query: Query{Text: "dana"}, want: []string{"Dana Lee"}},
		{name: "по описанию", query: Query{Text: "poster"}, want: []string{"Dana Lee"}},
		{name: "категория", query: Query{Category: "Design"}, want: []string{"Dana Lee"}},
		{name: "категория точно", query: Query{Category: "design"}, want: []string{}},
		{name: "запрос и категория", query: Query{Text: "plumb", Category: "Design"}, want: []string{}},
		{name: "локация игнорируется", query: Query{Location: "Berlin"}, want: []string{"Mario Rossi", "Dana Lee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(dir, tt.query)
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.User.FullName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilter_ExcludesZeroSkillProfessionals(t *testing.T) {
	dir := sampleDirectory()
	for _, q := range []Query{{}, {Text: "plumbing"}, {Text: "fan"}, {Category: "Home Services"}} {
		for _, p := range Filter(dir, q) {
			assert.NotEmpty(t, p.Skills, "query %+v", q)
		}
	}
}

func TestCompleteness(t *testing.T) {
	lat, lng, zero := 52.52, 13.40, 0.0
	skills := []models.Skill{newSkill(uuid.New(), "Plumbing", "Home")}

	tests := []struct {
		name   string
		user   models.User
		skills []models.Skill
		want   int
	}{
		{name: "пусто", user: models.User{}, want: 0},
		{name: "только имя", user: models.User{FullName: "A"}, want: 20},
		{name: "имя и навык", user: models.User{FullName: "A"}, skills: skills, want: 40},
		{name: "пустая строка bio не считается", user: models.User{FullName: "A", Bio: strPtr("")}, want: 20},
		{name: "нулевая координата не считается", user: models.User{FullName: "A", Latitude: &lat, Longitude: &zero}, want: 20},
		{
			name:   "всё заполнено",
			user:   models.User{FullName: "A", Bio: strPtr("b"), Phone: strPtr("+1"), Latitude: &lat, Longitude: &lng},
			skills: skills,
			want:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completeness(tt.user, tt.skills))
		})
	}
}

func TestRatesAndExperience(t *testing.T) {
	r40, r60 := models.Amount(40), models.Amount(60)
	skills := []models.Skill{
		{HourlyRate: &r40, ExperienceYears: 3},
		{HourlyRate: &r60, ExperienceYears: 7, IsAvailable: true},
		{ExperienceYears: 1},
	}

	assert.InDelta(t, 100.0/3, AverageRate(skills), 0.0001)
	assert.Equal(t, "$33/hr", RateLabel(AverageRate(skills)))
	assert.Zero(t, AverageRate(nil))
	assert.Equal(t, 7, MaxExperience(skills))
	assert.True(t, Available(skills))
	assert.False(t, Available(skills[:1]))
}

func TestSkillRows(t *testing.T) {
	user := newUser("Alice")
	known := uuid.New()
	rate := models.Amount(50)

	withName := newSkill(user.ID, "Plumbing", "")
	withName.CategoryID = known
	withName.HourlyRate = &rate
	withName.IsAvailable = true

	orphan := newSkill(user.ID, "Juggling", "")

	rows := SkillRows(
		[]Professional{{User: user, Skills: []models.Skill{withName, orphan}}},
		NewCategoryIndex([]models.Category{{ID: known, Name: "Home Services"}}),
	)

	require.Len(t, rows, 2)
	assert.Equal(t, SkillRow{
		SkillID: withName.ID.String(), UserEmail: user.Email, SkillName: "Plumbing",
		Category: "Home Services", Rate: "$50 USD", Available: true,
	}, rows[0])
	assert.Equal(t, UnknownCategory, rows[1].Category)
	assert.Equal(t, "Not set", rows[1].Rate)
}
