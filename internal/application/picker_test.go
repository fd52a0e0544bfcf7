package application_test

import (
	"errors"
	"testing"

	"voxlate/internal/application"
	"voxlate/internal/domain"
)

func TestPicker_Select(t *testing.T) {
	p, err := application.NewPicker(domain.DefaultCatalog(), "en")
	if err != nil {
		t.Fatalf("NewPicker error: %v", err)
	}

	p.Open()
	if err := p.Select("ta"); err != nil {
		t.Fatalf("Select error: %v", err)
	}

	if p.Selected().Name != "Tamil" {
		t.Errorf("selected: got %s, want Tamil", p.Selected().Name)
	}
	if p.IsOpen() {
		t.Error("picker should close after selection")
	}
}

func TestPicker_SelectUnknownKeepsState(t *testing.T) {
	p, err := application.NewPicker(domain.DefaultCatalog(), "hi")
	if err != nil {
		t.Fatalf("NewPicker error: %v", err)
	}

	p.Open()
	err = p.Select("xx")
	if !errors.Is(err, domain.ErrUnknownLanguage) {
		t.Errorf("error: got %v, want ErrUnknownLanguage", err)
	}
	if p.Selected().Code != "hi" {
		t.Errorf("selected: got %s, want hi", p.Selected().Code)
	}
	if !p.IsOpen() {
		t.Error("picker should stay open after a rejected selection")
	}
}

func TestNewPicker_UnknownCode(t *testing.T) {
	if _, err := application.NewPicker(domain.DefaultSpeechCatalog(), "en"); err == nil {
		t.Error("expected error for a code outside the catalog")
	}
}
