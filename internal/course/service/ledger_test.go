package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	authdomain "github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/service"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPurchases is an in-memory purchase store with the same uniqueness rule
// as the purchases table.
type memPurchases struct {
	mu     sync.Mutex
	grants []domain.Purchase
	keys   map[string]bool
	// existsAlwaysFalse makes every request miss the pre-check, as when
	// concurrent requests all read before any of them writes.
	existsAlwaysFalse bool
	courses           map[string]domain.Course
}

func newMemPurchases(courses ...domain.Course) *memPurchases {
	m := &memPurchases{keys: map[string]bool{}, courses: map[string]domain.Course{}}
	for _, c := range courses {
		m.courses[c.ID] = c
	}
	return m
}

func key(userID, courseID string) string { return userID + "/" + courseID }

func (m *memPurchases) Exists(_ context.Context, userID, courseID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsAlwaysFalse {
		return false, nil
	}
	return m.keys[key(userID, courseID)], nil
}

func (m *memPurchases) Create(_ context.Context, p *domain.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys[key(p.UserID, p.CourseID)] {
		return autherror.ErrAlreadyPurchased
	}
	m.keys[key(p.UserID, p.CourseID)] = true
	m.grants = append(m.grants, *p)
	return nil
}

func (m *memPurchases) ListByUser(_ context.Context, userID string) ([]domain.PurchasedCourse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []domain.PurchasedCourse{}
	for _, g := range m.grants {
		if g.UserID == userID {
			items = append(items, domain.PurchasedCourse{Purchase: g, Course: m.courses[g.CourseID]})
		}
	}
	return items, nil
}

func (m *memPurchases) count(userID, courseID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, g := range m.grants {
		if g.UserID == userID && g.CourseID == courseID {
			n++
		}
	}
	return n
}

func newUser() authdomain.Principal {
	return authdomain.Principal{ID: uuid.NewString(), Class: authdomain.PrincipalUser}
}

func newCourse(title string) domain.Course {
	return domain.Course{ID: uuid.NewString(), Title: title, CreatorID: uuid.NewString(), Price: 10}
}

func courseLookup(ctrl *gomock.Controller, courses ...domain.Course) *mocks.MockCourseRepository {
	repo := mocks.NewMockCourseRepository(ctrl)
	byID := map[string]domain.Course{}
	for _, c := range courses {
		byID[c.ID] = c
	}
	repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*domain.Course, error) {
		c, ok := byID[id]
		if !ok {
			return nil, nil
		}
		return &c, nil
	}).AnyTimes()
	return repo
}

func TestPurchaseLedger_Purchase_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	course := newCourse("Go")
	store := newMemPurchases(course)
	ledger := service.NewPurchaseLedger(courseLookup(ctrl, course), store)
	user := newUser()

	p, err := ledger.Purchase(context.Background(), user, course.ID)

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, course.ID, p.CourseID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, 1, store.count(user.ID, course.ID))
}

func TestPurchaseLedger_Purchase_SequentialDouble(t *testing.T) {
	ctrl := gomock.NewController(t)
	course := newCourse("Go")
	store := newMemPurchases(course)
	ledger := service.NewPurchaseLedger(courseLookup(ctrl, course), store)
	user := newUser()

	_, err := ledger.Purchase(context.Background(), user, course.ID)
	require.NoError(t, err)

	p, err := ledger.Purchase(context.Background(), user, course.ID)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, autherror.ErrAlreadyPurchased)
	assert.Equal(t, 400, autherror.StatusCode(err))
	assert.Equal(t, 1, store.count(user.ID, course.ID))
}

func TestPurchaseLedger_Purchase_StoreDecidesWhenPrecheckMisses(t *testing.T) {
	ctrl := gomock.NewController(t)
	course := newCourse("Go")
	store := newMemPurchases(course)
	store.existsAlwaysFalse = true
	ledger := service.NewPurchaseLedger(courseLookup(ctrl, course), store)
	user := newUser()

	_, err := ledger.Purchase(context.Background(), user, course.ID)
	require.NoError(t, err)

	_, err = ledger.Purchase(context.Background(), user, course.ID)
	assert.ErrorIs(t, err, autherror.ErrAlreadyPurchased)
	assert.Equal(t, 1, store.count(user.ID, course.ID))
}

func TestPurchaseLedger_Purchase_Concurrent(t *testing.T) {
	const attempts = 32

	ctrl := gomock.NewController(t)
	course := newCourse("Go")
	store := newMemPurchases(course)
	store.existsAlwaysFalse = true
	ledger := service.NewPurchaseLedger(courseLookup(ctrl, course), store)
	user := newUser()

	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		successes = make(chan struct{}, attempts)
		failures  = make(chan error, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := ledger.Purchase(context.Background(), user, course.ID); err != nil {
				failures <- err
				return
			}
			successes <- struct{}{}
		}()
	}
	close(start)
	wg.Wait()
	close(successes)
	close(failures)

	assert.Len(t, successes, 1)
	assert.Len(t, failures, attempts-1)
	for err := range failures {
		assert.ErrorIs(t, err, autherror.ErrAlreadyPurchased)
	}
	assert.Equal(t, 1, store.count(user.ID, course.ID))
}

func TestPurchaseLedger_Purchase_DifferentUsersSameCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	course := newCourse("Go")
	store := newMemPurchases(course)
	ledger := service.NewPurchaseLedger(courseLookup(ctrl, course), store)
	alice, bob := newUser(), newUser()

	_, err := ledger.Purchase(context.Background(), alice, course.ID)
	require.NoError(t, err)
	_, err = ledger.Purchase(context.Background(), bob, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, store.count(alice.ID, course.ID))
	assert.Equal(t, 1, store.count(bob.ID, course.ID))
}

func TestPurchaseLedger_Purchase_CourseNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newMemPurchases()
	ledger := service.NewPurchaseLedger(courseLookup(ctrl), store)
	user := newUser()

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		p, err := ledger.Purchase(context.Background(), user, id)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, autherror.ErrCourseNotFound)
		assert.Equal(t, 404, autherror.StatusCode(err))
	}

	items, err := ledger.ListPurchases(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPurchaseLedger_Purchase_RequiresUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := service.NewPurchaseLedger(mocks.NewMockCourseRepository(ctrl), mocks.NewMockPurchaseRepository(ctrl))
	admin := authdomain.Principal{ID: uuid.NewString(), Class: authdomain.PrincipalAdmin}

	_, err := ledger.Purchase(context.Background(), admin, uuid.NewString())
	assert.ErrorIs(t, err, autherror.ErrUnauthenticated)

	_, err = ledger.ListPurchases(context.Background(), admin)
	assert.ErrorIs(t, err, autherror.ErrUnauthenticated)
}

func TestPurchaseLedger_Purchase_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	course := newCourse("Go")
	purchases := mocks.NewMockPurchaseRepository(ctrl)
	ledger := service.NewPurchaseLedger(courseLookup(ctrl, course), purchases)
	user := newUser()
	dbErr := errors.New("db down")

	t.Run("exists check fails", func(t *testing.T) {
		purchases.EXPECT().Exists(gomock.Any(), user.ID, course.ID).Return(false, dbErr)

		_, err := ledger.Purchase(context.Background(), user, course.ID)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("insert fails", func(t *testing.T) {
		purchases.EXPECT().Exists(gomock.Any(), user.ID, course.ID).Return(false, nil)
		purchases.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dbErr)

		p, err := ledger.Purchase(context.Background(), user, course.ID)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, 500, autherror.StatusCode(err))
	})

	t.Run("course lookup fails", func(t *testing.T) {
		courses := mocks.NewMockCourseRepository(ctrl)
		courses.EXPECT().GetByID(gomock.Any(), course.ID).Return(nil, dbErr)
		l := service.NewPurchaseLedger(courses, purchases)

		_, err := l.Purchase(context.Background(), user, course.ID)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestPurchaseLedger_ListPurchases(t *testing.T) {
	ctrl := gomock.NewController(t)
	first, second, third := newCourse("First"), newCourse("Second"), newCourse("Third")
	store := newMemPurchases(first, second, third)
	ledger := service.NewPurchaseLedger(courseLookup(ctrl, first, second, third), store)
	user, other := newUser(), newUser()
	ctx := context.Background()

	// Purchase out of catalog order to check insertion order is kept.
	for _, c := range []domain.Course{third, first, second} {
		_, err := ledger.Purchase(ctx, user, c.ID)
		require.NoError(t, err)
	}
	_, err := ledger.Purchase(ctx, other, first.ID)
	require.NoError(t, err)

	items, err := ledger.ListPurchases(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Third", items[0].Course.Title)
	assert.Equal(t, "First", items[1].Course.Title)
	assert.Equal(t, "Second", items[2].Course.Title)
	for _, item := range items {
		assert.Equal(t, user.ID, item.Purchase.UserID)
		assert.Equal(t, item.Course.ID, item.Purchase.CourseID)
	}

	again, err := ledger.ListPurchases(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}
