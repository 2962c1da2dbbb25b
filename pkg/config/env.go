package config

// EnvPrefix is passed to envconfig; individual fields carry the fully
// prefixed names so the prefix itself stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "VESTIPLAN_APP_ENV"
	EnvPort      = "VESTIPLAN_APP_PORT"
	EnvDBDSN     = "VESTIPLAN_DB_DSN"
	EnvDBHost    = "VESTIPLAN_DB_HOST"
	EnvDBUser    = "VESTIPLAN_DB_USER"
	EnvDBName    = "VESTIPLAN_DB_NAME"
	EnvRedisURL  = "VESTIPLAN_REDIS_URL"
	EnvJWTSecret = "VESTIPLAN_JWT_SECRET"
	EnvJWTIssuer = "VESTIPLAN_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
