package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"30"`

	// Auth: bearer tokens are verified against the issuer's JWKS endpoint.
	AuthIssuerURL string `envconfig:"AUTH_ISSUER_URL"`

	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"session_id"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Object storage for uploaded report files, either "supabase" or "s3".
	StorageBackend    string `envconfig:"STORAGE_BACKEND" default:"supabase"`
	StorageBucketName string `envconfig:"STORAGE_BUCKET_NAME" default:"credit-reports"`
	SupabaseProjectID string `envconfig:"SUPABASE_PROJECT_ID"`
	SupabaseAPIKey    string `envconfig:"SUPABASE_API_KEY"`

	// AI provider credentials. Only providers with a key set are registered;
	// selecting an unconfigured provider is an error.
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel      string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	AnthropicAPIKey  string `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicModel   string `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-sonnet-20241022"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	GeminiModel      string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	OpenRouterAPIKey string `envconfig:"OPENROUTER_API_KEY"`
	OpenRouterModel  string `envconfig:"OPENROUTER_MODEL" default:"anthropic/claude-3.5-sonnet"`
	AzureEndpoint    string `envconfig:"AZURE_DI_ENDPOINT"`
	AzureAPIKey      string `envconfig:"AZURE_DI_API_KEY"`

	AITimeoutSec  uint `envconfig:"AI_TIMEOUT_SEC" default:"120"`
	RetryAttempts uint `envconfig:"RETRY_ATTEMPTS" default:"2"`
	RetryDelaySec uint `envconfig:"RETRY_DELAY_SEC" default:"1"`

	// Scoring policy version for the analysis summary: "v1" or "v2".
	ScorePolicy string `envconfig:"SCORE_POLICY" default:"v2"`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"` // 10 MiB
}
