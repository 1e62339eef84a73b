package providers

import (
	"github.com/bradfitz/gomemcache/memcache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahashem12/LaunchpadX-sub001/internal/config"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/memory"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/repository"
	"github.com/ahashem12/LaunchpadX-sub001/internal/usecase"
)

// Repositories bundles one implementation of every storage port.
type Repositories struct {
	Projects     usecase.ProjectRepository
	Members      usecase.MemberRepository
	Roles        usecase.RoleRepository
	Applications usecase.ApplicationRepository
	NextSteps    usecase.NextStepRepository
	Profiles     usecase.ProfileRepository
	Ecosystem    usecase.EcosystemRepository
}

// NewDatabase opens a Postgres connection using the configured DSN and
// migrates the schema.
func NewDatabase(conf config.Server, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewPostgres(conf.PostgresDsn, log)
	if err != nil {
		return nil, err
	}
	if err := database.MigratePostgres(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewMemcache creates a memcache client, or nil when no address is configured.
func NewMemcache(conf config.Server) *memcache.Client {
	if conf.MemcachedAddr == "" {
		return nil
	}
	return database.NewMemcached(conf.MemcachedAddr)
}

// NewPostgresRepositories backs every port with Postgres. Ecosystem listings
// go through memcached when mc is not nil.
func NewPostgresRepositories(db *gorm.DB, mc *memcache.Client) Repositories {
	var ecosystem usecase.EcosystemRepository = repository.NewEcosystemRepository(db)
	if mc != nil {
		ecosystem = repository.NewCachedEcosystemRepository(ecosystem, mc)
	}

	return Repositories{
		Projects:     repository.NewProjectRepository(db),
		Members:      repository.NewMemberRepository(db),
		Roles:        repository.NewRoleRepository(db),
		Applications: repository.NewApplicationRepository(db),
		NextSteps:    repository.NewNextStepRepository(db),
		Profiles:     repository.NewProfileRepository(db),
		Ecosystem:    ecosystem,
	}
}

// NewMemoryRepositories backs every port with a seeded in-process store.
func NewMemoryRepositories() Repositories {
	mem := memory.New()
	memory.Seed(mem)

	return Repositories{
		Projects:     mem.Projects(),
		Members:      mem.Members(),
		Roles:        mem.Roles(),
		Applications: mem.Applications(),
		NextSteps:    mem.NextSteps(),
		Profiles:     mem.Profiles(),
		Ecosystem:    mem.Ecosystem(),
	}
}
