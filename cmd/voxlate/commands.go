package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"voxlate/internal/application"
	"voxlate/internal/domain"
	"voxlate/internal/infra/httpapi"
)

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.Server.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.services(ctx, true)
	if err != nil {
		return err
	}

	server := httpapi.NewServer(svc, httpapi.Options{
		Addr:           *addr,
		AuthToken:      a.cfg.Server.AuthToken,
		RateLimit:      a.cfg.Server.RateLimit,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Translation:    a.cfg.Languages.Translation,
		Speech:         a.cfg.Languages.Speech,
		Source:         a.cfg.Languages.Source,
		Target:         a.cfg.Languages.Target,
		Speak:          a.cfg.Languages.Speak,
		DocumentSource: a.cfg.Languages.DocumentSource,
	}, a.logger)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	<-ctx.Done()
	return server.Stop()
}

func (a *app) translate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	from := fs.String("from", a.cfg.Languages.Source, "source language code")
	to := fs.String("to", a.cfg.Languages.Target, "target language code")
	play := fs.Bool("play", a.cfg.Audio.AutoPlay, "play the synthesized translation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		return errors.New("translate: no text given")
	}

	svc, err := a.services(ctx, false)
	if err != nil {
		return err
	}

	screen, err := application.NewTranslateScreen(ctx, svc, application.TranslateOptions{
		Catalog:  a.cfg.Languages.Translation,
		From:     *from,
		To:       *to,
		AutoPlay: *play,
	})
	if err != nil {
		return err
	}
	defer screen.Close()

	screen.SetSource(text)
	err = screen.Translate(ctx)

	a.printTranslation(screen.State())
	return err
}

func (a *app) speak(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("speak", flag.ContinueOnError)
	lang := fs.String("lang", a.cfg.Languages.Speak, "speech language code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		return errors.New("speak: no text given")
	}

	svc, err := a.services(ctx, false)
	if err != nil {
		return err
	}

	screen, err := application.NewSpeechScreen(ctx, svc, application.SpeechOptions{
		Catalog:  a.cfg.Languages.Speech,
		Language: *lang,
	})
	if err != nil {
		return err
	}
	defer screen.Close()

	screen.SetText(text)
	if err := screen.Generate(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "audio: %s\n", screen.State().Audio)
	return nil
}

func (a *app) extract(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	kindFlag := fs.String("kind", "", "image or document (default: from the file extension)")
	to := fs.String("to", a.cfg.Languages.Target, "target language code")
	export := fs.Bool("pdf", false, "export the translation as a PDF")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return errors.New("extract: exactly one file expected")
	}
	file := domain.Locator(fs.Arg(0))

	kind := domain.DocumentKindImage
	if strings.EqualFold(filepath.Ext(file.Base()), ".pdf") {
		kind = domain.DocumentKindDocument
	}
	if *kindFlag != "" {
		var ok bool
		if kind, ok = domain.ParseDocumentKind(*kindFlag); !ok {
			return fmt.Errorf("extract: unknown kind %q", *kindFlag)
		}
	}

	svc, err := a.services(ctx, false)
	if err != nil {
		return err
	}

	screen, err := application.NewDocumentScreen(ctx, svc, application.DocumentOptions{
		Catalog: a.cfg.Languages.Translation,
		From:    a.cfg.Languages.DocumentSource,
		To:      *to,
	})
	if err != nil {
		return err
	}
	defer screen.Close()

	if err := screen.Extract(ctx, file, kind); err != nil {
		return err
	}

	state := screen.State()
	fmt.Fprintf(a.out, "extracted:\n%s\n\ntranslated (%s):\n%s\n", state.Extracted, state.To.Selected.Name, state.Translated)

	if !*export {
		return nil
	}

	if err := screen.ExportPDF(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "pdf: %s\n", screen.State().Export.Payload)
	return nil
}

func (a *app) record(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	from := fs.String("from", a.cfg.Languages.Source, "spoken language code")
	to := fs.String("to", a.cfg.Languages.Target, "target language code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.services(ctx, false)
	if err != nil {
		return err
	}

	screen, err := application.NewTranslateScreen(ctx, svc, application.TranslateOptions{
		Catalog:  a.cfg.Languages.Translation,
		From:     *from,
		To:       *to,
		AutoPlay: true,
	})
	if err != nil {
		return err
	}
	defer screen.Close()

	if err := screen.StartRecording(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "recording, press Enter to stop")

	enter := make(chan struct{})
	go func() {
		bufio.NewReader(a.in).ReadString('\n')
		close(enter)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-enter:
	}

	if err := screen.StopRecording(ctx); err != nil {
		return err
	}

	err = screen.Translate(ctx)
	a.printTranslation(screen.State())
	return err
}

func (a *app) languages(args []string) error {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tTRANSLATION\tSPEECH")

	seen := make(map[string]bool)
	for _, catalog := range []domain.Catalog{a.cfg.Languages.Translation, a.cfg.Languages.Speech} {
		for _, l := range catalog {
			if seen[l.Code] {
				continue
			}
			seen[l.Code] = true

			_, translation := a.cfg.Languages.Translation.Lookup(l.Code)
			_, speech := a.cfg.Languages.Speech.Lookup(l.Code)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Code, l.Name, mark(translation), mark(speech))
		}
	}

	return w.Flush()
}

func (a *app) printTranslation(state application.TranslateState) {
	if state.Source != "" {
		fmt.Fprintf(a.out, "%s: %s\n", state.From.Selected.Name, state.Source)
	}
	fmt.Fprintf(a.out, "%s: %s\n", state.To.Selected.Name, state.Output)
	if !state.Audio.IsZero() {
		fmt.Fprintf(a.out, "audio: %s\n", state.Audio)
	}
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}
