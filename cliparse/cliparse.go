package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Database types accepted by -t / DATABASE_TYPE
const (
	DBSQLite   = "sqlite"
	DBPostgres = "postgres"
	DBPgx      = "pgx"
)

const defaultSQLitePath = "data/bokesys.sqlite"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKey     string
	LogSalt      string
	LogLevel     string
	EnvFile      string

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable behind a reverse proxy that overwrites those headers.
	TrustProxy bool

	// Guard limits
	NameLimit        int
	PostBodyLimit    int
	CommentBodyLimit int
	IPPostLimit      int

	// Ranking result-set sizes
	RankingPlayer int
	RankingPost   int

	// Defaults for new topics
	DefaultPointA int
	DefaultPointB int
	DefaultPointC int
	DefaultLimitA int
	DefaultLimitB int
	DefaultLimitC int
}

// ParseFlags validates flags and fills the rest from the environment.
// Precedence: CLI flag, then environment (including the .env file), then default.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("bokesys", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.EnvFile, "env", "", "Path to a .env file (default .env)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Read the client address from forwarding headers")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Operator key (prefer env)")
	fs.StringVar(&cfg.LogSalt, "log-salt", "", "Salt for hashing origins in logs (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.EnvFile == "" {
		cfg.EnvFile = os.Getenv("ENV_FILE")
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = ".env"
	}
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DBSQLite
		}
	}
	switch cfg.DatabaseType {
	case DBSQLite, DBPostgres, DBPgx:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DBSQLite {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}

	trustSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "trust-proxy" {
			trustSet = true
		}
	})
	if s := os.Getenv("TRUST_PROXY"); !trustSet && s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, errors.New("invalid TRUST_PROXY env variable")
		}
		cfg.TrustProxy = v
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}
	if cfg.LogSalt == "" {
		cfg.LogSalt = os.Getenv("LOG_SALT")
	}
	if cfg.LogSalt == "" {
		cfg.LogSalt = cfg.AdminKey
	}

	limits := []struct {
		dst  *int
		env  string
		def  int
		zero bool // whether 0 is allowed
	}{
		{&cfg.NameLimit, "NAME_LIMIT", 20, false},
		{&cfg.PostBodyLimit, "POST_BODY_LIMIT", 200, false},
		{&cfg.CommentBodyLimit, "COMMENT_BODY_LIMIT", 200, false},
		{&cfg.IPPostLimit, "IP_POST_LIMIT", 3, false},
		{&cfg.RankingPlayer, "RANKING_PLAYER", 50, false},
		{&cfg.RankingPost, "RANKING_POST", 20, false},
		{&cfg.DefaultPointA, "DEFAULT_POINT_A", 3, false},
		{&cfg.DefaultPointB, "DEFAULT_POINT_B", 2, false},
		{&cfg.DefaultPointC, "DEFAULT_POINT_C", 1, false},
		{&cfg.DefaultLimitA, "DEFAULT_LIMIT_A", 1, true},
		{&cfg.DefaultLimitB, "DEFAULT_LIMIT_B", 3, true},
		{&cfg.DefaultLimitC, "DEFAULT_LIMIT_C", 5, true},
	}
	for _, l := range limits {
		v, err := envInt(l.env, l.def)
		if err != nil {
			return Config{}, err
		}
		if v < 0 || (v == 0 && !l.zero) {
			return Config{}, fmt.Errorf("%s must be positive", l.env)
		}
		*l.dst = v
	}

	if !(cfg.DefaultPointA > cfg.DefaultPointB && cfg.DefaultPointB > cfg.DefaultPointC) {
		return Config{}, errors.New("default points must satisfy A > B > C")
	}

	return cfg, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
