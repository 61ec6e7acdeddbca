package sparkify

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance)
	// required for AuthMethodGoogleIAM.
	GoogleInstance string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks the fields every connector needs.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Host == "" && c.AuthMethod != AuthMethodGoogleIAM {
		errs = append(errs, fmt.Errorf("Host is required: %w", ErrInvalidConfig))
	}
	if c.Database == "" {
		errs = append(errs, fmt.Errorf("Database is required: %w", ErrInvalidConfig))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("Port %d is out of range: %w", c.Port, ErrInvalidConfig))
	}
	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v: %w", c.AuthMethod, ErrUnsupportedAuthMethod))
	}

	return errors.Join(errs...)
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps the --auth-method and sparkify.yaml spelling to an AuthMethod.
// An empty string means standard authentication.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "gcp", "google-iam":
		return AuthMethodGoogleIAM, nil
	case "azure", "entra", "azure-entra-id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}

// SchemaConfig contains the parameters of a create-tables run.
type SchemaConfig struct {
	// Connection targets the analytics database; Connection.Database is dropped and recreated.
	Connection ConnectionConfig

	// MaintenanceDatabase is the database to connect to for server-level operations
	// (CREATE DATABASE, DROP DATABASE). Typically "postgres".
	MaintenanceDatabase string

	// Force replaces the interactive confirmation with a cancellable countdown.
	Force bool

	// Timeout is the global timeout for the whole run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the SchemaConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *SchemaConfig) Validate() error {
	var errs []error

	if c.Connection.Database == "" {
		errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
	}
	if c.MaintenanceDatabase == "" {
		errs = append(errs, fmt.Errorf("maintenance database is required: %w", ErrInvalidConfig))
	}
	if c.Connection.Database != "" && strings.EqualFold(c.Connection.Database, c.MaintenanceDatabase) {
		errs = append(errs, fmt.Errorf("cannot recreate %q: it is the maintenance database: %w",
			c.Connection.Database, ErrInvalidConfig))
	}
	if IsTemplateDatabase(c.Connection.Database) {
		errs = append(errs, fmt.Errorf("cannot recreate template database %q: %w", c.Connection.Database, ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// LoadConfig contains the parameters of an etl run.
type LoadConfig struct {
	// Connection targets the analytics database created by create-tables.
	Connection ConnectionConfig

	// SongDataPath is the root directory of catalog files.
	SongDataPath string

	// LogDataPath is the root directory of activity log files.
	LogDataPath string

	// Timeout is the global timeout for the whole run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.Connection.Database == "" {
		errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
	}
	if c.SongDataPath == "" {
		errs = append(errs, fmt.Errorf("song data path is required: %w", ErrInvalidConfig))
	}
	if c.LogDataPath == "" {
		errs = append(errs, fmt.Errorf("log data path is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// IsTemplateDatabase reports whether name is one of PostgreSQL's template databases.
func IsTemplateDatabase(name string) bool {
	switch strings.ToLower(name) {
	case "template0", "template1":
		return true
	}
	return false
}

// FileCategory selects the loader that handles a data file.
type FileCategory int

const (
	// CategoryCatalog files hold one song/artist record each.
	CategoryCatalog FileCategory = iota
	// CategoryActivity files hold a batch of user activity events.
	CategoryActivity
)

// String returns the phase name used in progress output.
func (c FileCategory) String() string {
	switch c {
	case CategoryCatalog:
		return "songs"
	case CategoryActivity:
		return "logs"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// FileMetadata describes one discovered data file.
// Path uses Unix-style forward slashes relative to the scan root.
type FileMetadata struct {
	Path       string // Relative path from scan root: "./A/A/A/TRAAAAW128F429D538.json"
	AbsPath    string // Path handed to the parser
	Name       string // Filename only
	Directory  string // Parent directory: "./A/A/A/" or "./" for root
	Depth      int    // Nesting level (0 = root)
	SizeBytes  int64
	ModifiedAt time.Time
}

// FileScanResult contains the results of scanning a directory.
type FileScanResult struct {
	Root  string
	Files []FileMetadata
}
