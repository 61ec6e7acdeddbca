package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/sparkify/internal/config"
	"github.com/vvka-141/sparkify/internal/db"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// connectionFlags holds the connection-related flag values shared by
// create-tables and etl.
type connectionFlags struct {
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	authMethod     string
	awsRegion      string
	googleInstance string
	azureTenantID  string
	azureClientID  string
}

// resolvedConnection holds the resolved connection configuration.
type resolvedConnection struct {
	ConnConfig    *sparkify.ConnectionConfig
	MaintenanceDB string
}

// addConnectionFlags registers the connection flags on cmd, bound to flags.
func addConnectionFlags(cmd *cobra.Command, flags *connectionFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.connection, "connection", "c", "",
		"PostgreSQL connection string (URI or key=value).\n"+
			"The database named in the string is used for CREATE/DROP DATABASE.\n"+
			"Falls back to $SPARKIFY_CONNECTION_STRING, then $DATABASE_URL.")
	f.StringVarP(&flags.host, "host", "h", "", "PostgreSQL host (default: $PGHOST or localhost)")
	f.IntVarP(&flags.port, "port", "p", 0, "PostgreSQL port (default: $PGPORT or 5432)")
	f.StringVarP(&flags.username, "username", "U", "", "PostgreSQL user (default: $PGUSER or $USER)")
	f.StringVarP(&flags.database, "database", "d", "",
		"Analytics database (default: $PGDATABASE or "+sparkify.DefaultDatabase+")")
	f.StringVar(&flags.sslMode, "sslmode", "", "SSL mode: disable, allow, prefer, require, verify-ca, verify-full")

	f.StringVar(&flags.authMethod, "auth-method", "",
		"Authentication: standard, aws, google, azure (default: $SPARKIFY_AUTH_METHOD or standard)")
	f.StringVar(&flags.awsRegion, "aws-region", "", "AWS region for RDS IAM tokens (default: $AWS_REGION)")
	f.StringVar(&flags.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")
	f.StringVar(&flags.azureTenantID, "azure-tenant-id", "", "Azure tenant ID (default: $AZURE_TENANT_ID)")
	f.StringVar(&flags.azureClientID, "azure-client-id", "", "Azure client ID (default: $AZURE_CLIENT_ID)")

	_ = cmd.RegisterFlagCompletionFunc("sslmode", completeSSLModes)
	_ = cmd.RegisterFlagCompletionFunc("auth-method", completeAuthMethods)
}

// resolveConnectionFromFlags resolves connection configuration from flags,
// the environment and sparkify.yaml.
func resolveConnectionFromFlags(flags connectionFlags, projectCfg *config.ProjectConfig) (*resolvedConnection, error) {
	granularFlags := &db.GranularConnFlags{
		Host:     flags.host,
		Port:     flags.port,
		Username: flags.username,
		Database: flags.database,
		SSLMode:  flags.sslMode,
	}

	cloudFlags := &db.CloudFlags{
		AuthMethod:     flags.authMethod,
		AWSRegion:      flags.awsRegion,
		GoogleInstance: flags.googleInstance,
		AzureTenantID:  flags.azureTenantID,
		AzureClientID:  flags.azureClientID,
	}

	connConfig, maintenanceDB, err := db.ResolveConnectionParams(
		flags.connection,
		granularFlags,
		cloudFlags,
		db.LoadFromEnvironment(),
		projectCfg,
	)
	if err != nil {
		return nil, err
	}

	return &resolvedConnection{
		ConnConfig:    connConfig,
		MaintenanceDB: maintenanceDB,
	}, nil
}
