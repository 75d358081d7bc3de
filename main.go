package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/soocke/vision-panel-go/app"
	"github.com/soocke/vision-panel-go/config"
	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/ui/model"
)

func main() {
	cfgPath := flag.String("config", "vision-panel.json", "path to the JSON config file")
	subjectID := flag.String("subject", "", "subject id (UUID) of the uploaded image or video")
	kind := flag.String("kind", string(inference.SubjectImage), "subject kind: image or video_frame")
	frame := flag.Int("frame", -1, "frame index for video_frame subjects")
	imageSrc := flag.String("image", "", "display image URL or file path")
	width := flag.Int("width", 0, "display width in pixels (config default when 0)")
	height := flag.Int("height", 0, "display height in pixels (config default when 0)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	subject := model.Subject{
		ID:            *subjectID,
		Kind:          inference.SubjectKind(*kind),
		DisplayImage:  *imageSrc,
		DisplayWidth:  *width,
		DisplayHeight: *height,
	}
	if *frame >= 0 {
		idx := *frame
		subject.FrameIndex = &idx
	}
	if subject.ID == "" {
		logger.Error("missing -subject")
		flag.Usage()
		os.Exit(2)
	}

	application := app.NewApp("Vision Panel", cfg, *cfgPath, logger, subject)
	application.Start()
}
