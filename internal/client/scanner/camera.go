package scanner

import "strings"

const (
	CameraErrorPermission  = "Разрешите доступ к камере в настройках браузера"
	CameraErrorNotFound    = "Камера не найдена"
	CameraErrorNotReadable = "Камера занята или недоступна"
	ScannerErrorPrefix     = "Ошибка сканера"

	maxCameraErrorLen = 80
)

// CameraErrorMessage maps a raw decoder error to a user-facing message.
// Permission problems are checked first, then a missing camera, then a busy
// one; anything else is reported with a truncated excerpt.
func CameraErrorMessage(raw string) string {
	switch {
	case containsAny(raw, "NotAllowedError", "Permission", "NotAllowed"):
		return CameraErrorPermission
	case containsAny(raw, "NotFoundError", "NotFound"):
		return CameraErrorNotFound
	case containsAny(raw, "NotReadableError", "NotReadable"):
		return CameraErrorNotReadable
	}

	if raw == "" {
		return ScannerErrorPrefix
	}
	r := []rune(raw)
	if len(r) > maxCameraErrorLen {
		return ScannerErrorPrefix + ": " + string(r[:maxCameraErrorLen]) + "…"
	}
	return ScannerErrorPrefix + ": " + raw
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
