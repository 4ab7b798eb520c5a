package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Optimize operation defaults
	v.SetDefault("ai.optimize.provider", "gemini")
	v.SetDefault("ai.optimize.model", "")
	v.SetDefault("ai.optimize.timeout", 90*time.Second) // Longer timeout for the large optimization prompt
	v.SetDefault("ai.optimize.apiKey", "")
	v.SetDefault("ai.optimize.maxRetries", 2)
	v.SetDefault("ai.optimize.temperature", 0.3) // Lower temperature for consistency
	v.SetDefault("ai.optimize.useSystemPrompts", true)

	// AI Configuration - Extract operation defaults
	v.SetDefault("ai.extract.provider", "gemini")
	v.SetDefault("ai.extract.model", "")
	v.SetDefault("ai.extract.timeout", 45*time.Second)
	v.SetDefault("ai.extract.apiKey", "")
	v.SetDefault("ai.extract.maxRetries", 1) // Refinement is best-effort, fail fast
	v.SetDefault("ai.extract.temperature", 0.1)
	v.SetDefault("ai.extract.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	v.SetDefault("ai.optimize.circuitBreaker.enabled", true)
	v.SetDefault("ai.optimize.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.optimize.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.optimize.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.optimize.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.optimize.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.extract.circuitBreaker.enabled", true)
	v.SetDefault("ai.extract.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.extract.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.extract.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.extract.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.extract.circuitBreaker.failureThreshold", 0.6)

	// Extractor Configuration
	v.SetDefault("extractor.relayTimeout", 15*time.Second)
	v.SetDefault("extractor.minFetchLength", 100)
	v.SetDefault("extractor.maxTextLength", 8000)
	v.SetDefault("extractor.minTextLength", 50)
	v.SetDefault("extractor.relays", []map[string]any{
		{"name": "allorigins", "url": "https://api.allorigins.win/get?url=", "envelope": "contents"},
		{"name": "corsproxy", "url": "https://corsproxy.io/?", "envelope": "raw"},
		{"name": "codetabs", "url": "https://api.codetabs.com/v1/proxy?quest=", "envelope": "raw"},
	})

	// Classification vocabularies: Swedish-market defaults, overridable
	v.SetDefault("extractor.classification.cookieIndicators", []string{
		"cookie policy", "cookies", "gdpr", "consent", "samtycke", "kakor",
		"acceptera alla", "accept all", "integritetspolicy", "privacy policy",
	})
	v.SetDefault("extractor.classification.errorIndicators", []string{
		"404", "403", "500", "page not found", "access denied",
		"sidan kunde inte hittas", "sidan finns inte", "ett fel uppstod",
	})
	v.SetDefault("extractor.classification.loginIndicators", []string{
		"log in", "logga in", "sign in", "password", "lösenord",
		"username", "användarnamn", "skapa konto", "create account",
	})
	v.SetDefault("extractor.classification.jobIndicators", []string{
		"ansvar", "responsibilities", "krav", "requirements",
		"kvalifikationer", "qualifications", "erfarenhet", "experience",
		"ansökan", "application", "lön", "salary", "vi söker", "tjänsten",
		"meriterande", "anställning", "heltid", "deltid", "rekrytering",
	})
	v.SetDefault("extractor.classification.cookieMaxLength", 2000)
	v.SetDefault("extractor.classification.loginMaxLength", 1000)
	v.SetDefault("extractor.classification.jobMinLength", 500)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 5*1024*1024) // 5MB, PDF resumes included

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "cvoptimera")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
