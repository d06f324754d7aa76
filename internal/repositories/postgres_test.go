package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	schema, err := os.ReadFile("../../migrations/0001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	alice, err := writeRepo.Save(ctx, models.NewUser{Username: "alice", Email: "alice@x.com", PasswordHash: "hash1"})
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, models.NewUser{Username: "alice2", Email: "alice@x.com", PasswordHash: "hash"})
		assert.ErrorIs(t, err, models.ErrDuplicate)

		var count int
		require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM users WHERE email = $1", "alice@x.com"))
		assert.Equal(t, 1, count)
	})

	t.Run("ByEmail", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "alice@x.com")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, alice.ID, user.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "missing@x.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("UpdatePasswordMismatchedPair", func(t *testing.T) {
		err := writeRepo.UpdatePassword(ctx, alice.ID, "other@x.com", "hash2")
		assert.Error(t, err)

		user, err := readRepo.GetByIDAndEmail(ctx, alice.ID, "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, "hash1", user.PasswordHash)
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		require.NoError(t, writeRepo.UpdatePassword(ctx, alice.ID, "alice@x.com", "hash2"))

		user, err := readRepo.GetByIDAndEmail(ctx, alice.ID, "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, "hash2", user.PasswordHash)
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		role := "admin"
		user, err := writeRepo.UpdateProfile(ctx, alice.ID, models.ProfileUpdate{Role: &role})
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.Role)
		assert.Equal(t, "admin", *user.Role)
	})
}

func TestProductWriteRepository_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewProductWriteRepository(db)
	color := "blue"

	product, err := repo.Save(context.Background(), models.Product{Name: "umbrella", Stock: 0, Color: &color, Price: 12.5})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "umbrella", product.Name)
	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, 12.5, product.Price)
	assert.Nil(t, product.Description)
}
