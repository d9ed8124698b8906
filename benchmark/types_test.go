package benchmark

import (
	"github.com/danpasecinic/ioc"
)

type Config struct {
	Host string
	Port int
}

type Logger struct {
	Level string
}

type Database struct {
	Config *Config
	Logger *Logger
}

type Cache struct {
	Logger *Logger
}

type Repository struct {
	DB    *Database
	Cache *Cache
}

type Service struct {
	Repo   *Repository
	Logger *Logger
}

// Handler is wired through properties instead of a constructor.
type Handler struct {
	Service *Service `ioc:""`
	Logger  *Logger  `ioc:""`
}

func NewConfig() *Config { return &Config{Host: "localhost", Port: 8080} }

func NewLogger() *Logger { return &Logger{Level: "info"} }

func NewDatabase(cfg *Config, log *Logger) *Database { return &Database{Config: cfg, Logger: log} }

func NewCache(log *Logger) *Cache { return &Cache{Logger: log} }

func NewRepository(db *Database, cache *Cache) *Repository { return &Repository{DB: db, Cache: cache} }

func NewService(repo *Repository, log *Logger) *Service { return &Service{Repo: repo, Logger: log} }

func chainTypes() *ioc.TypeSet {
	return ioc.NewTypeSet("benchmark").Add(
		ioc.Type[*Config](ioc.ExportSelf(), ioc.Constructors(NewConfig)),
		ioc.Type[*Logger](ioc.ExportSelf(), ioc.Constructors(NewLogger)),
		ioc.Type[*Database](ioc.ImportConstructor(), ioc.Constructors(NewDatabase)),
		ioc.Type[*Cache](ioc.ImportConstructor(), ioc.Constructors(NewCache)),
		ioc.Type[*Repository](ioc.ImportConstructor(), ioc.Constructors(NewRepository)),
		ioc.Type[*Service](ioc.ImportConstructor(), ioc.Constructors(NewService)),
		ioc.Type[*Handler](),
	)
}
