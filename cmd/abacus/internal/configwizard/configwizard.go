// Package configwizard asks for display, web and logging settings with huh
// forms and turns the answers into an engine.Config.
package configwizard

import (
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/abacus/pkg/engine"
)

// Answers holds the wizard's form values as entered.
type Answers struct {
	Thousands     string
	Decimal       string
	PressFeedback string
	WebAddr       string
	MCPName       string
	LogLevel      string
}

// FromConfig prefills the answers from cfg.
func FromConfig(cfg engine.Config) Answers {
	return Answers{
		Thousands:     cfg.Display.ThousandsSeparator,
		Decimal:       cfg.Display.DecimalSeparator,
		PressFeedback: cfg.Display.PressFeedback,
		WebAddr:       cfg.Web.Addr,
		MCPName:       cfg.MCP.Name,
		LogLevel:      cfg.Log.Level,
	}
}

// Apply writes the answers into a copy of cfg and validates the result.
func (a Answers) Apply(cfg engine.Config) (engine.Config, error) {
	cfg.Display.ThousandsSeparator = a.Thousands
	cfg.Display.DecimalSeparator = a.Decimal
	cfg.Display.PressFeedback = a.PressFeedback
	cfg.Web.Addr = a.WebAddr
	cfg.MCP.Name = a.MCPName
	cfg.Log.Level = a.LogLevel

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}

	return cfg, nil
}

// Run shows the wizard prefilled from cfg and returns the edited config.
func Run(cfg engine.Config) (engine.Config, error) {
	a := FromConfig(cfg)

	if err := a.form().Run(); err != nil {
		return engine.Config{}, err
	}

	return a.Apply(cfg)
}

func (a *Answers) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Thousands separator").
				Options(
					huh.NewOption("Comma (1,234)", ","),
					huh.NewOption("Period (1.234)", "."),
					huh.NewOption("Space (1 234)", " "),
					huh.NewOption("Apostrophe (1'234)", "'"),
					huh.NewOption("Underscore (1_234)", "_"),
				).
				Value(&a.Thousands),
			huh.NewSelect[string]().
				Title("Decimal separator").
				Options(
					huh.NewOption("Point (0.5)", "."),
					huh.NewOption("Comma (0,5)", ","),
				).
				Value(&a.Decimal).
				Validate(func(s string) error {
					if s == a.Thousands {
						return fmt.Errorf("must differ from the thousands separator")
					}
					return nil
				}),
			huh.NewInput().
				Title("Key press highlight (e.g. 100ms, 0 to disable)").
				Value(&a.PressFeedback).
				Validate(validateDuration),
		),
		huh.NewGroup(
			huh.NewInput().Title("Browser UI listen address").Value(&a.WebAddr).Validate(validateAddr),
			huh.NewInput().Title("MCP server name").Value(&a.MCPName).Validate(validateNonEmpty),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&a.LogLevel),
		),
	)
}

func validateDuration(s string) error {
	if s == "" || s == "0" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration like 100ms")
	}
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateAddr(s string) error {
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("must be host:port")
	}
	return nil
}

func validateNonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}
