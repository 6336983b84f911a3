package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"alloydb-shop/api/internal/model"
	"alloydb-shop/api/internal/repository"
)

const schema = `
CREATE TABLE users (
	user_id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	status TEXT
);
CREATE TABLE items (
	item_id SERIAL PRIMARY KEY,
	item_description TEXT NOT NULL,
	item_value NUMERIC(10, 2) NOT NULL
);
CREATE TABLE orders (
	order_id SERIAL PRIMARY KEY,
	create_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	status TEXT NOT NULL,
	user_id INT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE
);
CREATE TABLE order_items (
	order_items_id SERIAL PRIMARY KEY,
	order_id INT NOT NULL REFERENCES orders (order_id) ON DELETE CASCADE,
	item_id INT NOT NULL REFERENCES items (item_id) ON DELETE CASCADE,
	quantity INT NOT NULL
);
CREATE TABLE ratings (
	rating_id SERIAL PRIMARY KEY,
	value INT NOT NULL,
	comments TEXT,
	user_id INT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	order_items_id INT NOT NULL REFERENCES order_items (order_items_id) ON DELETE CASCADE
);`

var (
	sharedOnce sync.Once
	sharedPool *pgxpool.Pool
	sharedErr  error
)

// setupTestDB starts one Postgres container per package run and truncates
// every table before each test.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	sharedOnce.Do(func() {
		ctx := context.Background()
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("shop_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			sharedErr = err
			return
		}
		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			sharedErr = err
			return
		}
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			sharedErr = err
			return
		}
		if _, err := pool.Exec(ctx, schema); err != nil {
			sharedErr = err
			return
		}
		sharedPool = pool
	})
	require.NoError(t, sharedErr, "Failed to start PostgreSQL container")

	_, err := sharedPool.Exec(context.Background(),
		"TRUNCATE TABLE ratings, order_items, orders, items, users RESTART IDENTITY CASCADE")
	require.NoError(t, err, "Failed to truncate tables")

	return sharedPool
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUserRepository_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	in := model.UserInput{Name: "Ada", Email: "ada@example.com", Status: strPtr("active")}
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: created.ID, Name: "Ada", Email: "ada@example.com", Status: strPtr("active")}, *got)

	// Full replace: a nil status clears the stored one.
	updated, err := repo.Update(ctx, created.ID, model.UserInput{Name: "Ada L.", Email: "ada@lovelace.dev"})
	require.NoError(t, err)
	assert.Nil(t, updated.Status)

	got, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: created.ID, Name: "Ada L.", Email: "ada@lovelace.dev"}, *got)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepositories_MissingIDIsNotFound(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	users := repository.NewUserRepository(pool)
	_, err := users.Get(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = users.Update(ctx, 999, model.UserInput{Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, users.Delete(ctx, 999), repository.ErrNotFound)

	ratings := repository.NewRatingRepository(pool)
	_, err = ratings.Update(ctx, 999, model.RatingInput{Value: 3, UserID: 1, OrderItemsID: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, ratings.Delete(ctx, 999), repository.ErrNotFound)
}

func TestItemRepository_ListPagination(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewItemRepository(pool)
	ctx := context.Background()

	for _, v := range []string{"1.00", "2.50", "3.75", "4.00", "5.10"} {
		_, err := repo.Create(ctx, model.ItemInput{Description: "item " + v, Value: decPtr(v)})
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].ID)
	assert.Equal(t, int64(3), page[1].ID)
	assert.True(t, decimal.RequireFromString("2.50").Equal(page[0].Value))

	empty, err := repo.List(ctx, 10, 50)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestOrderRepository_CreateDateDefaultsAndFullReplace(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	user, err := repository.NewUserRepository(pool).Create(ctx, model.UserInput{Name: "Bo", Email: "bo@example.com"})
	require.NoError(t, err)

	repo := repository.NewOrderRepository(pool)
	order, err := repo.Create(ctx, model.OrderInput{Status: "pending", UserID: user.ID})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), order.CreateDate, time.Minute)

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updated, err := repo.Update(ctx, order.ID, model.OrderInput{CreateDate: &fixed, Status: "shipped", UserID: user.ID})
	require.NoError(t, err)
	assert.True(t, fixed.Equal(updated.CreateDate))

	got, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(got.CreateDate))
	assert.Equal(t, "shipped", got.Status)
	assert.Equal(t, user.ID, got.UserID)

	_, err = repo.Update(ctx, order.ID, model.OrderInput{Status: "delivered", UserID: user.ID})
	assert.ErrorIs(t, err, repository.ErrMissingCreateDate)

	unchanged, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", unchanged.Status)
}

func TestRatingRepository_ForeignKeyViolationIsNotNotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewRatingRepository(pool)

	_, err := repo.Create(context.Background(), model.RatingInput{Value: 4, UserID: 42, OrderItemsID: 42})
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

type fixture struct {
	userID      int64
	itemID      int64
	orderItemID int64
}

func seedOrder(t *testing.T, pool *pgxpool.Pool, created time.Time) fixture {
	t.Helper()
	ctx := context.Background()

	user, err := repository.NewUserRepository(pool).Create(ctx, model.UserInput{Name: "Cy", Email: "cy@example.com"})
	require.NoError(t, err)
	item, err := repository.NewItemRepository(pool).Create(ctx, model.ItemInput{Description: "Latte", Value: decPtr("4.50")})
	require.NoError(t, err)
	order, err := repository.NewOrderRepository(pool).Create(ctx, model.OrderInput{CreateDate: &created, Status: "paid", UserID: user.ID})
	require.NoError(t, err)
	line, err := repository.NewOrderItemRepository(pool).Create(ctx, model.OrderItemInput{OrderID: order.ID, ItemID: item.ID, Quantity: 2})
	require.NoError(t, err)

	return fixture{userID: user.ID, itemID: item.ID, orderItemID: line.ID}
}

func TestInsightRepository_UserOrderHistory(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	insights := repository.NewInsightRepository(pool)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := seedOrder(t, pool, older)

	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	order2, err := repository.NewOrderRepository(pool).Create(ctx, model.OrderInput{CreateDate: &newer, Status: "new", UserID: f.userID})
	require.NoError(t, err)
	_, err = repository.NewOrderItemRepository(pool).Create(ctx, model.OrderItemInput{OrderID: order2.ID, ItemID: f.itemID, Quantity: 1})
	require.NoError(t, err)

	history, err := insights.UserOrderHistory(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, order2.ID, history[0].OrderID, "newest order first")
	require.Len(t, history[1].Items, 1)
	assert.Equal(t, "Latte", history[1].Items[0].ItemDescription)
	assert.Equal(t, 2, history[1].Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("4.50").Equal(history[1].Items[0].ItemValue))

	exists, err := insights.UserExists(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = insights.UserExists(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, exists)

	none, err := insights.UserOrderHistory(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInsightRepository_AverageRatingAndComments(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	insights := repository.NewInsightRepository(pool)
	f := seedOrder(t, pool, time.Now())

	avg, err := insights.ItemAverageRating(ctx, f.itemID)
	require.NoError(t, err)
	assert.False(t, avg.AverageRating.Valid, "no ratings yields a null average")
	assert.Zero(t, avg.RatingCount)

	ratings := repository.NewRatingRepository(pool)
	for _, in := range []model.RatingInput{
		{Value: 1, Comments: strPtr("cold and late"), UserID: f.userID, OrderItemsID: f.orderItemID},
		{Value: 4, Comments: strPtr("   "), UserID: f.userID, OrderItemsID: f.orderItemID},
		{Value: 5, UserID: f.userID, OrderItemsID: f.orderItemID},
	} {
		_, err := ratings.Create(ctx, in)
		require.NoError(t, err)
	}

	avg, err = insights.ItemAverageRating(ctx, f.itemID)
	require.NoError(t, err)
	require.True(t, avg.AverageRating.Valid)
	assert.Equal(t, "3.33", avg.AverageRating.Decimal.StringFixed(2))
	assert.Equal(t, int64(3), avg.RatingCount)

	comments, err := insights.ItemComments(ctx, f.itemID, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"cold and late"}, comments)
}
