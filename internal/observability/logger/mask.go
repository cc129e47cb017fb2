package logger

import "strings"

// MaskAuthorization masks credential material in an Authorization header,
// preserving the scheme. Basic credentials are masked entirely since they
// embed the shop secret key.
func MaskAuthorization(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parts := strings.Fields(value)
	if len(parts) == 2 {
		switch {
		case strings.EqualFold(parts[0], "Basic"):
			return "Basic ****"
		case strings.EqualFold(parts[0], "Bearer"):
			return "Bearer " + maskLast4(parts[1])
		}
	}
	return maskLast4(value)
}

// MaskSecret masks a secret key, preserving only the last 4 characters.
func MaskSecret(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return maskLast4(value)
}

func maskLast4(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
