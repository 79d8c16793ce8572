package gl

import (
	"context"
	"log/slog"
)

// Setup applies the fixed pipeline state the renderer expects: depth testing
// with LESS, back-face culling, no multisampling and straight alpha blending.
// When logger is non-nil, driver debug output is routed to it synchronously.
func Setup(gl OpenGL, logger *slog.Logger) {
	gl.Enable(DepthTest)
	gl.DepthFunc(Less)
	gl.Enable(CullFace)
	gl.Disable(Multisample)
	gl.Enable(Blend)
	gl.BlendFunc(SrcAlpha, OneMinusSrcAlpha)

	if logger != nil {
		gl.Enable(DebugOutputSynchronous)
		gl.DebugMessageCallback(func(source, kind, id, severity uint32, message string) {
			logger.Log(context.Background(), debugLevel(severity), "gl debug",
				"source", source, "type", kind, "id", id, "message", message)
		})
	}
}

// Describe reports the driver strings for the current context.
func Describe(gl OpenGL) []any {
	return []any{
		"vendor", gl.GetString(Vendor),
		"renderer", gl.GetString(Renderer),
		"version", gl.GetString(Version),
		"glsl", gl.GetString(ShadingLanguageVersion),
	}
}

const (
	debugSeverityHigh         = 0x9146
	debugSeverityMedium       = 0x9147
	debugSeverityLow          = 0x9148
	debugSeverityNotification = 0x826B
)

func debugLevel(severity uint32) slog.Level {
	switch severity {
	case debugSeverityHigh:
		return slog.LevelError
	case debugSeverityMedium:
		return slog.LevelWarn
	case debugSeverityLow:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
