package rules

import (
	"fmt"
	"strings"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// Catalog returns the built-in detector set. The slice and the rules in it
// are read-only; every scan indexes the same values.
func Catalog() []Rule {
	return []Rule{
		&builtinRule{
			id:         "SPRING_PROFILE_DEV_ACTIVE",
			severity:   model.SeverityHigh,
			keys:       []string{"spring.profiles.active"},
			platforms:  []model.Platform{model.PlatformSpring},
			suggestion: "Activate a production profile (e.g. spring.profiles.active=prod).",
			detect: func(e model.Entry, def model.Severity) *detection {
				for _, p := range splitList(e.Value) {
					switch p {
					case "dev", "development", "local", "test":
						return &detection{
							Severity: def,
							Message:  fmt.Sprintf("Non-production Spring profile %q is active", p),
						}
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:         "HIBERNATE_DDL_AUTO_UNSAFE",
			severity:   model.SeverityHigh,
			keys:       []string{"spring.jpa.hibernate.ddl-auto"},
			platforms:  []model.Platform{model.PlatformSpring},
			suggestion: "Use ddl-auto=validate (or none) in production and manage schema with migrations.",
			detect: func(e model.Entry, def model.Severity) *detection {
				// Only create/create-drop escalate; update stays at the
				// default HIGH.
				switch strings.ToLower(e.Value) {
				case "create", "create-drop":
					return &detection{
						Severity: model.SeverityCritical,
						Message:  fmt.Sprintf("Hibernate ddl-auto %q recreates the schema and destroys data on startup", e.Value),
					}
				case "update":
					return &detection{
						Severity: def,
						Message:  "Hibernate ddl-auto \"update\" mutates the schema on startup",
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:         "SPRING_H2_CONSOLE_ENABLED",
			severity:   model.SeverityHigh,
			keys:       []string{"spring.h2.console.enabled"},
			platforms:  []model.Platform{model.PlatformSpring},
			suggestion: "Disable the H2 console outside local development.",
			detect:     truthyDetect("H2 web console is enabled"),
		},
		&builtinRule{
			id:         "SPRING_SHOW_SQL_ENABLED",
			severity:   model.SeverityLow,
			keys:       []string{"spring.jpa.show-sql"},
			platforms:  []model.Platform{model.PlatformSpring},
			suggestion: "Disable show-sql; SQL logging belongs at TRACE level behind a logger.",
			detect:     truthyDetect("SQL statement logging is enabled"),
		},
		&builtinRule{
			id:         "ACTUATOR_ENDPOINTS_EXPOSED",
			severity:   model.SeverityHigh,
			keys:       []string{"management.endpoints.web.exposure.include"},
			platforms:  []model.Platform{model.PlatformSpring},
			suggestion: "Expose only health and info; keep env, heapdump and shutdown off the web.",
			detect: func(e model.Entry, def model.Severity) *detection {
				if strings.TrimSpace(e.Value) == "*" {
					return &detection{Severity: def, Message: "All actuator endpoints are exposed over the web"}
				}
				exposed := splitList(e.Value)
				for _, ep := range exposed {
					switch ep {
					case "env", "heapdump", "shutdown", "threaddump":
						return &detection{
							Severity: def,
							Message:  fmt.Sprintf("Sensitive actuator endpoint %q is exposed over the web", ep),
						}
					}
				}
				if len(exposed) > 5 {
					return &detection{
						Severity: model.SeverityMedium,
						Message:  fmt.Sprintf("%d actuator endpoints are exposed over the web", len(exposed)),
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:         "DEBUG_LOGGING_ENABLED",
			severity:   model.SeverityMedium,
			keys:       []string{"logging.level.root", "logging.level.*"},
			platforms:  []model.Platform{model.PlatformSpring},
			suggestion: "Use INFO or WARN log levels in production.",
			detect: func(e model.Entry, def model.Severity) *detection {
				level := strings.ToUpper(strings.TrimSpace(e.Value))
				if level != "DEBUG" && level != "TRACE" {
					return nil
				}
				if e.Key == "logging.level.root" {
					return &detection{Severity: def, Message: fmt.Sprintf("Root logger is set to %s", level)}
				}
				return &detection{
					Severity: model.SeverityLow,
					Message:  fmt.Sprintf("Logger %q is set to %s", strings.TrimPrefix(e.Key, "logging.level."), level),
				}
			},
		},
		&builtinRule{
			id:         "SERVER_ERROR_DETAILS_EXPOSED",
			severity:   model.SeverityMedium,
			keys:       []string{"server.error.include-stacktrace", "server.error.include-message"},
			platforms:  []model.Platform{model.PlatformSpring},
			suggestion: "Set server.error.include-* to never in production.",
			detect: func(e model.Entry, def model.Severity) *detection {
				switch strings.ToLower(e.Value) {
				case "always", "on-param", "on_trace_param", "on-trace-param":
					return &detection{
						Severity: def,
						Message:  fmt.Sprintf("Error responses include internal details (%s=%s)", e.Key, e.Value),
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:         "NODE_ENV_NOT_PRODUCTION",
			severity:   model.SeverityHigh,
			keys:       []string{"node.env"},
			platforms:  []model.Platform{model.PlatformNode},
			suggestion: "Set NODE_ENV=production.",
			detect: func(e model.Entry, def model.Severity) *detection {
				if strings.EqualFold(strings.TrimSpace(e.Value), "production") {
					return nil
				}
				return &detection{
					Severity: def,
					Message:  fmt.Sprintf("NODE_ENV is %q, expected \"production\"", e.Value),
				}
			},
		},
		&builtinRule{
			id:         "NODE_TLS_REJECT_UNAUTHORIZED",
			severity:   model.SeverityCritical,
			keys:       []string{"node.tls.reject.unauthorized"},
			platforms:  []model.Platform{model.PlatformNode},
			suggestion: "Remove NODE_TLS_REJECT_UNAUTHORIZED=0; it disables TLS certificate validation process-wide.",
			detect: func(e model.Entry, def model.Severity) *detection {
				if strings.TrimSpace(e.Value) != "0" {
					return nil
				}
				return &detection{Severity: def, Message: "TLS certificate validation is disabled for all outbound connections"}
			},
		},
		&builtinRule{
			id:         "DEBUG_FLAG_ENABLED",
			severity:   model.SeverityHigh,
			keys:       []string{"debug"},
			platforms:  []model.Platform{model.PlatformAll},
			suggestion: "Disable the global debug flag in production.",
			detect:     truthyDetect("Global debug mode is enabled"),
		},
		&builtinRule{
			id:         "ASPNET_ENVIRONMENT_NOT_PRODUCTION",
			severity:   model.SeverityHigh,
			keys:       []string{"aspnetcore.environment"},
			platforms:  []model.Platform{model.PlatformDotnet},
			suggestion: "Set ASPNETCORE_ENVIRONMENT=Production.",
			detect: func(e model.Entry, def model.Severity) *detection {
				switch strings.ToLower(strings.TrimSpace(e.Value)) {
				case "development", "staging":
					return &detection{
						Severity: def,
						Message:  fmt.Sprintf("ASP.NET Core environment is %q, expected \"Production\"", e.Value),
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:       "ASPNET_DETAILED_ERRORS",
			severity: model.SeverityMedium,
			// JSON keys keep source casing, so both common spellings are
			// indexed alongside the env-derived form.
			keys:       []string{"DetailedErrors", "detailedErrors", "aspnetcore.detailederrors"},
			platforms:  []model.Platform{model.PlatformDotnet},
			suggestion: "Turn DetailedErrors off in production.",
			detect:     truthyDetect("Detailed error pages are enabled"),
		},
		&builtinRule{
			id:         "DJANGO_DEBUG_ENABLED",
			severity:   model.SeverityHigh,
			keys:       []string{"django.debug", "debug.mode"},
			platforms:  []model.Platform{model.PlatformDjango},
			suggestion: "Set DEBUG = False in production settings.",
			detect:     truthyDetect("Django debug mode is enabled"),
		},
		&builtinRule{
			id:         "ALLOWED_HOSTS_WILDCARD",
			severity:   model.SeverityMedium,
			keys:       []string{"allowed.hosts", "django.allowed.hosts"},
			platforms:  []model.Platform{model.PlatformDjango},
			suggestion: "List explicit hostnames in ALLOWED_HOSTS.",
			detect: func(e model.Entry, def model.Severity) *detection {
				for _, h := range splitList(e.Value) {
					if h == "*" {
						return &detection{Severity: def, Message: "ALLOWED_HOSTS accepts any Host header (*)"}
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:         "CORS_ALLOW_ALL_ORIGINS",
			severity:   model.SeverityMedium,
			keys:       []string{"cors.allowed.origins", "cors.allowed-origins", "cors.allow.origin"},
			platforms:  []model.Platform{model.PlatformAll},
			suggestion: "Allow only the origins the application actually serves.",
			detect: func(e model.Entry, def model.Severity) *detection {
				for _, o := range splitList(e.Value) {
					if o == "*" {
						return &detection{Severity: def, Message: "CORS allows requests from any origin (*)"}
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:         "SSL_VERIFICATION_DISABLED",
			severity:   model.SeverityCritical,
			keys:       []string{"*"},
			platforms:  []model.Platform{model.PlatformAll},
			suggestion: "Never disable certificate verification; fix the trust store instead.",
			detect: func(e model.Entry, def model.Severity) *detection {
				k := strings.ToLower(e.Key)
				if !strings.Contains(k, "ssl") && !strings.Contains(k, "tls") {
					return nil
				}
				if !strings.Contains(k, "verify") && !strings.Contains(k, "verification") && !strings.Contains(k, "validate") {
					return nil
				}
				switch strings.ToLower(strings.TrimSpace(e.Value)) {
				case "false", "0", "none", "no", "off", "disable", "disabled", "skip":
					return &detection{
						Severity: def,
						Message:  fmt.Sprintf("TLS/SSL verification is disabled via %s=%s", e.Key, e.Value),
					}
				}
				return nil
			},
		},
		&builtinRule{
			id:         "HARDCODED_SECRET_VALUE",
			severity:   model.SeverityHigh,
			keys:       []string{"*"},
			platforms:  []model.Platform{model.PlatformAll},
			suggestion: "Inject secrets from the environment or a secret manager instead of committing them.",
			detect: func(e model.Entry, def model.Severity) *detection {
				if !secretishKey(e.Key) || isPlaceholder(e.Value) {
					return nil
				}
				return &detection{
					Severity: def,
					Message:  fmt.Sprintf("Key %q holds a literal secret value", e.Key),
				}
			},
		},
		&builtinRule{
			id:         "WEAK_SESSION_SECRET",
			severity:   model.SeverityHigh,
			keys:       []string{"session.secret", "secret.key", "jwt.secret", "app.secret"},
			platforms:  []model.Platform{model.PlatformAll},
			suggestion: "Use a random secret of at least 32 characters.",
			detect: func(e model.Entry, def model.Severity) *detection {
				v := strings.TrimSpace(e.Value)
				if v == "" || isPlaceholder(v) {
					return nil
				}
				if len(v) < 16 {
					return &detection{Severity: def, Message: fmt.Sprintf("Secret %q is only %d characters long", e.Key, len(v))}
				}
				if weakSecrets[strings.ToLower(v)] {
					return &detection{Severity: def, Message: fmt.Sprintf("Secret %q uses a well-known weak value", e.Key)}
				}
				return nil
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Shared value predicates
// ---------------------------------------------------------------------------

var weakSecrets = map[string]bool{
	"secret":           true,
	"changeme":         true,
	"change-me":        true,
	"password":         true,
	"password123":      true,
	"1234567890123456": true,
	"qwertyuiopasdfgh": true,
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on", "enabled":
		return true
	}
	return false
}

// isPlaceholder reports whether a value is an interpolation or template
// reference rather than a literal ( ${VAR}, {{var}}, $VAR, or empty ).
func isPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	if strings.HasPrefix(v, "${") || strings.HasPrefix(v, "{{") || strings.HasPrefix(v, "$") {
		return true
	}
	if strings.HasPrefix(v, "#{") { // spring SpEL
		return true
	}
	return false
}

func secretishKey(key string) bool {
	k := strings.ToLower(key)
	for _, marker := range []string{"password", "secret", "token", "api.key", "apikey", "api-key", "credential", "private.key"} {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}

// truthyDetect builds the common "fires when the value is truthy" check.
func truthyDetect(message string) func(model.Entry, model.Severity) *detection {
	return func(e model.Entry, def model.Severity) *detection {
		if !isTruthy(e.Value) {
			return nil
		}
		return &detection{Severity: def, Message: message}
	}
}
