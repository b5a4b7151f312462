// Package ui holds the interactive prompts and styled console output for
// the triage run.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/bassamadnan/mailtriage/config"
)

// Banner returns the welcome panel shown before prompting.
func Banner() string {
	body := BannerTitleStyle.Render("mailtriage") + "\n\n" +
		"Connect to your Gmail inbox, summarize recent emails with AI,\n" +
		"flag unreplied threads, draft replies, and export to CSV."
	return BannerStyle.Render(body)
}

// AskSettings prompts the operator for the per-run choices.
func AskSettings(defaults config.Settings) (config.Settings, error) {
	settings := defaults
	count := strconv.Itoa(settings.MaxEmails)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("How many recent emails to analyze?").
				Value(&count).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number")
					}
					if n > config.MaxEmailLimit {
						return fmt.Errorf("maximum is %d", config.MaxEmailLimit)
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Check reply status?").
				Description("Slower, one thread lookup per email").
				Value(&settings.CheckReplies),
			huh.NewConfirm().
				Title("Generate draft replies for unreplied emails?").
				Value(&settings.GenerateDrafts),
		),
	)
	if err := form.Run(); err != nil {
		return config.Settings{}, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return config.Settings{}, fmt.Errorf("invalid email count %q", count)
	}
	settings.MaxEmails = n
	return settings, nil
}

func Success(msg string) { fmt.Println(SuccessStyle.Render("✔ " + msg)) }
func Warn(msg string)    { fmt.Println(WarnStyle.Render("! " + msg)) }
func Info(msg string)    { fmt.Println(InfoStyle.Render("· " + msg)) }
func Step(msg string)    { fmt.Println("\n" + StepStyle.Render("» "+msg)) }
