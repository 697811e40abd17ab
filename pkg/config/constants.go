package config

// EnvPrefix is applied by envconfig on top of the explicit variable names.
const EnvPrefix = "DCKT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "DCKT_DB_DSN"
	EnvDBHost = "DCKT_DB_HOST"
	EnvDBUser = "DCKT_DB_USER"
	EnvDBName = "DCKT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
