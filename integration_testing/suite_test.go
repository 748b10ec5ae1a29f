package integration_testing

import (
	"context"
	"fmt"
	"log"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"

	"github.com/2beens/workoutlog/internal/db"
	"github.com/2beens/workoutlog/internal/exercises"
	"github.com/2beens/workoutlog/internal/stats"
	"github.com/2beens/workoutlog/internal/workouts"
)

const testDBName = "workoutlog"

// IntegrationTestSuite runs the repos against a real postgres instance in
// docker, covering the store behaviors the in-memory fakes only imitate:
// the create-transaction rollback, the delete cascade, the unique-name
// conflict and the orphaned-entry joins.
type IntegrationTestSuite struct {
	suite.Suite

	dockerPool *dockertest.Pool
	dbPool     *pgxpool.Pool
	teardown   []func()

	exercisesRepo *exercises.Repo
	workoutsRepo  *workouts.Repo
	statsRepo     *stats.Repo
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to suite.Run
func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

// runs before all tests are executed
func (s *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	fmt.Println("setting up test suite...")

	s.teardown = make([]func(), 0)

	var err error
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	s.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = s.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	pgPort, err := s.postgresSetup()
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	// the container needs a moment before it accepts connections
	if err := s.dockerPool.Retry(func() error {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost: "localhost",
			DBPort: pgPort,
			DBName: testDBName,
		})
		if err != nil {
			return err
		}
		if err := dbPool.Ping(ctx); err != nil {
			dbPool.Close()
			return err
		}
		s.dbPool = dbPool
		return nil
	}); err != nil {
		s.cleanup()
		log.Fatalf("connect to postgres: %s", err)
	}

	if err := db.Setup(ctx, s.dbPool); err != nil {
		s.cleanup()
		log.Fatalf("db setup: %s", err)
	}

	s.exercisesRepo = exercises.NewRepo(s.dbPool)
	s.workoutsRepo = workouts.NewRepo(s.dbPool)
	s.statsRepo = stats.NewRepo(s.dbPool)
}

func (s *IntegrationTestSuite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=" + testDBName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	return pgResource.GetPort("5432/tcp"), nil
}

// runs before each test, so every test starts from empty tables
func (s *IntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(
		context.Background(),
		`TRUNCATE workout_exercise, workout, exercise RESTART IDENTITY;`,
	)
	s.Require().NoError(err)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	fmt.Println("tearing down test suite...")
	s.cleanup()
}

func (s *IntegrationTestSuite) cleanup() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
}
