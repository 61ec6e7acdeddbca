package db

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/sparkify/internal/config"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// GranularConnFlags holds the libpq-style connection flags (-h, -p, -U, -d).
// There is no password flag: use $PGPASSWORD, .pgpass or a connection string.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no server-addressing flag was given.
// Database is excluded because -d may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudFlags selects and parameterises cloud IAM authentication.
// The Azure client secret is read from $AZURE_CLIENT_SECRET only.
type CloudFlags struct {
	AuthMethod     string
	AWSRegion      string
	GoogleInstance string
	AzureTenantID  string
	AzureClientID  string
}

// EnvVars is a snapshot of the environment variables the resolver consults.
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string
	PGDATABASE   string
	PGSSLMODE    string
	DATABASE_URL string

	SPARKIFY_CONNECTION_STRING string
	SPARKIFY_AUTH_METHOD       string

	AWS_REGION          string
	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:                     os.Getenv("PGHOST"),
		PGPORT:                     os.Getenv("PGPORT"),
		PGUSER:                     os.Getenv("PGUSER"),
		PGPASSWORD:                 os.Getenv("PGPASSWORD"),
		PGDATABASE:                 os.Getenv("PGDATABASE"),
		PGSSLMODE:                  os.Getenv("PGSSLMODE"),
		DATABASE_URL:               os.Getenv("DATABASE_URL"),
		SPARKIFY_CONNECTION_STRING: os.Getenv("SPARKIFY_CONNECTION_STRING"),
		SPARKIFY_AUTH_METHOD:       os.Getenv("SPARKIFY_AUTH_METHOD"),
		AWS_REGION:                 os.Getenv("AWS_REGION"),
		AZURE_TENANT_ID:            os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:            os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:        os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ResolveConnectionParams resolves where to connect and returns the target
// configuration together with the maintenance database used for
// CREATE/DROP DATABASE.
//
// Precedence:
//  1. --connection, then $SPARKIFY_CONNECTION_STRING, then $DATABASE_URL
//     (the latter two only when no granular flag is set)
//  2. granular flags, then PG* variables, then sparkify.yaml, then defaults
//
// Cloud auth settings follow flag > environment > sparkify.yaml.
// Giving both --connection and a granular flag is an error.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*sparkify.ConnectionConfig, string, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, "", fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/postgres\"\n"+
				"  2. Granular flags: -h localhost -p 5432 -U myuser -d %s: %w",
			sparkify.DefaultDatabase, sparkify.ErrInvalidConfig,
		)
	}

	connStr := connStringFlag
	if connStr == "" && granularFlags.IsEmpty() {
		connStr = firstNonEmpty(envVars.SPARKIFY_CONNECTION_STRING, envVars.DATABASE_URL)
	}

	var cfg *sparkify.ConnectionConfig
	var maintenanceDB string
	var err error
	if connStr != "" {
		cfg, maintenanceDB, err = resolveFromConnectionString(connStr, granularFlags.Database, envVars, pc)
	} else {
		cfg, maintenanceDB, err = resolveFromGranularParams(granularFlags, envVars, pc)
	}
	if err != nil {
		return nil, "", err
	}

	if err := applyCloudAuth(cfg, cloudFlags, envVars, pc); err != nil {
		return nil, "", err
	}
	if cfg.AppName == "" {
		cfg.AppName = sparkify.ApplicationName
	}

	return cfg, maintenanceDB, nil
}

// resolveFromConnectionString treats the database named in the string as the
// maintenance database unless it names the target itself.
func resolveFromConnectionString(connStr, databaseFlag string, envVars *EnvVars, pc config.ConnectionConfig) (*sparkify.ConnectionConfig, string, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, "", fmt.Errorf("invalid connection string: %w", err)
	}

	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}
	cfg.SSLMode = firstNonEmpty(cfg.SSLMode, envVars.PGSSLMODE, "prefer")

	uriDB := cfg.Database
	maintenanceDB := uriDB
	switch {
	case databaseFlag != "":
		cfg.Database = databaseFlag
	case !strings.EqualFold(uriDB, sparkify.DefaultManagementDB):
		maintenanceDB = firstNonEmpty(pc.ManagementDatabase, sparkify.DefaultManagementDB)
	default:
		cfg.Database = firstNonEmpty(pc.Database, sparkify.DefaultDatabase)
	}

	return cfg, maintenanceDB, nil
}

// resolveFromGranularParams applies flag > PG* env > sparkify.yaml > default per field.
func resolveFromGranularParams(flags *GranularConnFlags, envVars *EnvVars, pc config.ConnectionConfig) (*sparkify.ConnectionConfig, string, error) {
	cfg := &sparkify.ConnectionConfig{
		AuthMethod:       sparkify.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, "localhost")

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, "", fmt.Errorf("invalid $PGPORT value '%s': must be an integer: %w", envVars.PGPORT, sparkify.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = 5432
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = envVars.PGPASSWORD
	cfg.Database = firstNonEmpty(flags.Database, envVars.PGDATABASE, pc.Database, sparkify.DefaultDatabase)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, "prefer")

	return cfg, firstNonEmpty(pc.ManagementDatabase, sparkify.DefaultManagementDB), nil
}

// applyCloudAuth switches cfg to IAM authentication when one is requested,
// or to Azure when Azure identifiers are present without an explicit method.
func applyCloudAuth(cfg *sparkify.ConnectionConfig, flags *CloudFlags, env *EnvVars, pc config.ConnectionConfig) error {
	cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, env.AWS_REGION, pc.AWSRegion)
	cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
	cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)
	cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET

	method := firstNonEmpty(flags.AuthMethod, env.SPARKIFY_AUTH_METHOD, pc.AuthMethod)
	if method == "" {
		if cfg.AzureTenantID != "" || cfg.AzureClientID != "" {
			cfg.AuthMethod = sparkify.AuthMethodAzureEntraID
		}
		return nil
	}

	parsed, err := sparkify.ParseAuthMethod(method)
	if err != nil {
		return err
	}
	cfg.AuthMethod = parsed
	return nil
}
