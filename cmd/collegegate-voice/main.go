package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/collegegate/collegegate/internal/dotenv"
	"github.com/collegegate/collegegate/pkg/core/counselor"
	"github.com/collegegate/collegegate/pkg/core/live"
)

type options struct {
	mode      string
	model     string
	micDevice int
	micCmd    string
	ffplay    string
	volume    int
	imageDir  string
	debug     bool
}

func main() {
	var opt options
	flag.StringVar(&opt.mode, "mode", "counselor", "Session mode: counselor (AI advises you) or trainee (AI plays the student)")
	flag.StringVar(&opt.model, "model", live.DefaultModel, "Live audio model")
	flag.IntVar(&opt.micDevice, "mic-device", 0, "macOS avfoundation mic device index")
	flag.StringVar(&opt.micCmd, "mic-cmd", "", "Override mic capture command (runs via /bin/sh -lc); must emit s16le 16kHz mono on stdout")
	flag.StringVar(&opt.ffplay, "ffplay", "ffplay", "Path to ffplay")
	flag.IntVar(&opt.volume, "volume", 80, "Speaker volume (0-100)")
	flag.StringVar(&opt.imageDir, "image-dir", ".", "Directory for images the counselor generates")
	flag.BoolVar(&opt.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	os.Exit(run(opt))
}

func run(opt options) int {
	if err := dotenv.LoadFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "collegegate-voice:", err)
		return 1
	}

	level := slog.LevelWarn
	if opt.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "collegegate-voice: GEMINI_API_KEY is required")
		return 1
	}

	mode := live.Mode(strings.ToLower(strings.TrimSpace(opt.mode)))
	if mode != live.ModeCounselor && mode != live.ModeTrainee {
		fmt.Fprintln(os.Stderr, "collegegate-voice: --mode must be counselor or trainee")
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	generator, err := counselor.NewClient(ctx, counselor.Config{APIKey: apiKey, Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, "collegegate-voice:", err)
		return 1
	}

	cfg := live.DefaultSessionConfig()
	cfg.Model = opt.model
	cfg.Mode = mode
	cfg.SystemInstruction = counselor.SystemInstruction(mode)

	speaker := newFFPlaySpeaker(opt.ffplay, cfg.OutputRate, opt.volume)
	session := live.NewSession(cfg, live.Deps{
		Dialer:    &live.WebsocketDialer{APIKey: apiKey},
		Source:    newMicSource(opt.micDevice, opt.micCmd, cfg.FrameSize),
		Output:    newSpeakerOutput(speaker),
		Generator: generator,
		Logger:    logger,
	})

	if err := session.Connect(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "collegegate-voice:", err)
		return 1
	}
	fmt.Printf("Connected (%s mode, voice %s). Speak into the microphone.\n", mode, mode.Voice())
	fmt.Println("Commands: /upload <file>   send an image document")
	fmt.Println("          /quit            end the session")
	fmt.Println("Anything else is sent as a text turn.")

	done := make(chan struct{})
	go eventLoop(session, opt.imageDir, done)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nshutting down...")
		_ = session.Disconnect()
	}()

	repl(session)

	_ = session.Disconnect()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	return 0
}

func repl(session *live.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case strings.HasPrefix(line, "/upload "):
			upload(session, strings.TrimSpace(strings.TrimPrefix(line, "/upload ")))
		default:
			if err := session.SendText(line); err != nil {
				fmt.Fprintln(os.Stderr, "send:", err)
			}
		}
		if session.State() == live.StateClosed || session.State() == live.StateFailed {
			return
		}
	}
}

func upload(session *live.Session, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "upload:", err)
		return
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".png":
	default:
		fmt.Fprintln(os.Stderr, "upload: only .png and .jpg files are supported")
		return
	}
	if err := session.UploadDocument(filepath.Base(path), mime, data); err != nil {
		fmt.Fprintln(os.Stderr, "upload:", err)
	}
}

func eventLoop(session *live.Session, imageDir string, done chan<- struct{}) {
	defer close(done)
	for event := range session.Events() {
		switch e := event.(type) {
		case *live.StateChangedEvent:
			fmt.Printf("[session] %s -> %s\n", e.From, e.To)
		case *live.SpeakingEvent:
			if e.Speaking {
				fmt.Println("[guide] speaking...")
			}
		case *live.ToastEvent:
			fmt.Println("[info]", e.Message)
		case *live.ImageGeneratedEvent:
			saveImage(e.Image, imageDir)
		case *live.HandOffEvent:
			fmt.Println("[info] the guide can connect you with a human counselor")
		case *live.FramesDroppedEvent:
			fmt.Printf("[warn] dropped %d mic frames (network is behind)\n", e.Count)
		case *live.ErrorEvent:
			fmt.Printf("[error] %s: %s\n", e.Code, e.Message)
		case *live.SessionClosedEvent:
			fmt.Println("[session] closed:", e.Reason)
			return
		}
	}
}

func saveImage(img *live.GeneratedImage, dir string) {
	if img == nil {
		return
	}
	ext := ".png"
	if img.MIMEType == "image/jpeg" {
		ext = ".jpg"
	}
	name := filepath.Join(dir, fmt.Sprintf("campus-%d%s", time.Now().Unix(), ext))
	if err := os.WriteFile(name, img.Data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "save image:", err)
		return
	}
	fmt.Println("[image] saved", name)
}
