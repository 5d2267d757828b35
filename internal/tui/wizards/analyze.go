package wizards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoinsight-io/autoinsight/internal/tui/components"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// AnalyzeDefaults seeds the wizard with the values the flags would
// default to.
type AnalyzeDefaults struct {
	Tier      autoinsight.Tier
	Strategy  autoinsight.CleaningStrategy
	PDF       bool
	OutputDir string
}

// AnalyzeResult holds the choices made in the analyze wizard.
type AnalyzeResult struct {
	Cancelled bool
	Tier      autoinsight.Tier
	Strategy  autoinsight.CleaningStrategy
	PDF       bool
	OutputDir string
}

type analyzeStep int

const (
	stepSelectTier analyzeStep = iota
	stepSelectStrategy
	stepSelectPDF
	stepInputOutput
	stepReview
	stepDone
)

var tierChoices = []components.Option{
	{
		Label:       "Free",
		Description: fmt.Sprintf("Files up to %g MB, charts only", autoinsight.TierFree.LimitMB()),
		Value:       string(autoinsight.TierFree),
	},
	{
		Label:       "Pro",
		Description: fmt.Sprintf("Files up to %g MB, PDF reports included", autoinsight.TierPro.LimitMB()),
		Value:       string(autoinsight.TierPro),
	},
	{
		Label:       "Business",
		Description: fmt.Sprintf("Files up to %g MB, PDF reports included", autoinsight.TierBusiness.LimitMB()),
		Value:       string(autoinsight.TierBusiness),
	},
}

var strategyChoices = []components.Option{
	{
		Label:       "Auto",
		Description: "Median for skewed numbers, mean otherwise, mode for the rest",
		Value:       string(autoinsight.StrategyAuto),
	},
	{
		Label:       "Drop rows",
		Description: "Remove every row that has a missing cell",
		Value:       string(autoinsight.StrategyDrop),
	},
	{
		Label:       "Mean",
		Description: "Fill numeric gaps with the column mean",
		Value:       string(autoinsight.StrategyMean),
	},
	{
		Label:       "Median",
		Description: "Fill numeric gaps with the column median",
		Value:       string(autoinsight.StrategyMedian),
	},
	{
		Label:       "Mode",
		Description: "Fill gaps with the most frequent value",
		Value:       string(autoinsight.StrategyMode),
	},
	{
		Label:       "Forward fill",
		Description: "Carry the previous value forward",
		Value:       string(autoinsight.StrategyForwardFill),
	},
}

var pdfChoices = []components.Option{
	{Label: "Yes, generate a PDF report", Value: "yes"},
	{Label: "No, charts only", Value: "no"},
}

// AnalyzeWizard collects the analyze options interactively: tier,
// cleaning strategy, PDF on/off, and the output directory. It produces
// the same values the command-line flags would.
type AnalyzeWizard struct {
	step analyzeStep

	// Dataset being analyzed, shown for context only
	inputPath string

	tierIdx     int
	strategyIdx int
	pdfIdx      int

	output    components.TextField
	completer *components.PathCompleter

	result AnalyzeResult

	width  int
	height int

	styles wizardStyles
	keys   wizardKeys
}

type wizardStyles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
}

type wizardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Tab    key.Binding
}

func defaultWizardStyles() wizardStyles {
	return wizardStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginBottom(1),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Unselected:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func defaultWizardKeys() wizardKeys {
	return wizardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Select: key.NewBinding(key.WithKeys("enter")),
		Back:   key.NewBinding(key.WithKeys("esc")),
		Tab:    key.NewBinding(key.WithKeys("tab")),
	}
}

// NewAnalyzeWizard creates the wizard for the given input file,
// preselecting the supplied defaults.
func NewAnalyzeWizard(inputPath string, defaults AnalyzeDefaults) AnalyzeWizard {
	outputDir := defaults.OutputDir
	if outputDir == "" {
		outputDir = "./outputs"
	}

	output := components.NewTextField("Output directory", "./outputs").
		WithValue(outputDir).
		WithRequired(true)

	pdfIdx := 1
	if defaults.PDF {
		pdfIdx = 0
	}

	return AnalyzeWizard{
		step:        stepSelectTier,
		inputPath:   inputPath,
		tierIdx:     choiceIndex(tierChoices, string(defaults.Tier)),
		strategyIdx: choiceIndex(strategyChoices, string(defaults.Strategy)),
		pdfIdx:      pdfIdx,
		output:      output,
		completer:   components.NewPathCompleter(true),
		width:       80,
		height:      24,
		styles:      defaultWizardStyles(),
		keys:        defaultWizardKeys(),
	}
}

func choiceIndex(options []components.Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (w AnalyzeWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w AnalyzeWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		// ctrl+c always quits
		if msg.String() == "ctrl+c" {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case stepSelectTier:
			return w.updateTier(msg)
		case stepSelectStrategy:
			return w.updateStrategy(msg)
		case stepSelectPDF:
			return w.updatePDF(msg)
		case stepInputOutput:
			return w.updateOutput(msg)
		case stepReview:
			return w.updateReview(msg)
		}

	default:
		// Forward non-key messages (focus, cursor blink) to the text field
		if w.step == stepInputOutput {
			var cmd tea.Cmd
			w.output, cmd = w.output.Update(msg)
			return w, cmd
		}
	}

	return w, nil
}

func (w AnalyzeWizard) updateTier(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.tierIdx > 0 {
			w.tierIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.tierIdx < len(tierChoices)-1 {
			w.tierIdx++
		}
	case key.Matches(msg, w.keys.Select):
		// The free plan cannot produce a PDF
		if !w.selectedTier().AllowsPDF() {
			w.pdfIdx = 1
		}
		w.step = stepSelectStrategy
	case key.Matches(msg, w.keys.Back):
		w.result.Cancelled = true
		return w, tea.Quit
	}
	return w, nil
}

func (w AnalyzeWizard) updateStrategy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.strategyIdx > 0 {
			w.strategyIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.strategyIdx < len(strategyChoices)-1 {
			w.strategyIdx++
		}
	case key.Matches(msg, w.keys.Select):
		w.step = stepSelectPDF
	case key.Matches(msg, w.keys.Back):
		w.step = stepSelectTier
	}
	return w, nil
}

func (w AnalyzeWizard) updatePDF(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	allowed := w.selectedTier().AllowsPDF()

	switch {
	case key.Matches(msg, w.keys.Up):
		if allowed && w.pdfIdx > 0 {
			w.pdfIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if allowed && w.pdfIdx < len(pdfChoices)-1 {
			w.pdfIdx++
		}
	case msg.String() == "y":
		if allowed {
			w.pdfIdx = 0
		}
	case msg.String() == "n":
		w.pdfIdx = 1
	case key.Matches(msg, w.keys.Select):
		w.step = stepInputOutput
		return w, w.output.Focus()
	case key.Matches(msg, w.keys.Back):
		w.step = stepSelectStrategy
	}
	return w, nil
}

func (w AnalyzeWizard) updateOutput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		if err := w.output.Validate(); err != nil {
			return w, nil
		}
		w.output.Blur()
		w.step = stepReview
		return w, nil
	case key.Matches(msg, w.keys.Back):
		w.output.Blur()
		w.step = stepSelectPDF
		return w, nil
	case key.Matches(msg, w.keys.Tab):
		w.output.SetValue(w.completer.Next(w.output.Value()))
		return w, nil
	default:
		w.completer.Reset()
		var cmd tea.Cmd
		w.output, cmd = w.output.Update(msg)
		return w, cmd
	}
}

func (w AnalyzeWizard) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.buildResult()
		w.step = stepDone
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = stepInputOutput
		return w, w.output.Focus()
	}
	return w, nil
}

func (w AnalyzeWizard) selectedTier() autoinsight.Tier {
	return autoinsight.Tier(tierChoices[w.tierIdx].Value)
}

func (w AnalyzeWizard) selectedStrategy() autoinsight.CleaningStrategy {
	return autoinsight.CleaningStrategy(strategyChoices[w.strategyIdx].Value)
}

func (w *AnalyzeWizard) buildResult() {
	tier := w.selectedTier()
	w.result = AnalyzeResult{
		Tier:      tier,
		Strategy:  w.selectedStrategy(),
		PDF:       w.pdfIdx == 0 && tier.AllowsPDF(),
		OutputDir: w.output.Value(),
	}
}

// View implements tea.Model.
func (w AnalyzeWizard) View() string {
	var b strings.Builder

	b.WriteString(w.styles.Title.Render("autoinsight - Analysis Setup"))
	b.WriteString("\n")

	if w.inputPath != "" {
		b.WriteString(w.styles.Subtitle.Render("Dataset: " + w.inputPath))
		b.WriteString("\n")
	}

	switch w.step {
	case stepSelectTier:
		b.WriteString(w.viewChoices("Plan", tierChoices, w.tierIdx))
	case stepSelectStrategy:
		b.WriteString(w.viewChoices("Missing value strategy", strategyChoices, w.strategyIdx))
	case stepSelectPDF:
		b.WriteString(w.viewPDF())
	case stepInputOutput:
		b.WriteString(w.viewOutput())
	case stepReview:
		b.WriteString(w.viewReview())
	}

	return b.String()
}

func (w AnalyzeWizard) viewChoices(title string, options []components.Option, cursor int) string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	for i, opt := range options {
		style := w.styles.Unselected
		symbol := "○"
		if i == cursor {
			style = w.styles.Selected
			symbol = "●"
		}
		b.WriteString(style.Render(symbol + " " + opt.Label))
		b.WriteString("\n")
		if opt.Description != "" {
			b.WriteString(w.styles.Description.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString(w.styles.Help.Render("\n↑/↓ navigate • enter select • esc back"))
	return b.String()
}

func (w AnalyzeWizard) viewPDF() string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("PDF report"))
	b.WriteString("\n")

	if !w.selectedTier().AllowsPDF() {
		b.WriteString(w.styles.Warning.Render("Not available on the free plan"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, opt := range pdfChoices {
		style := w.styles.Unselected
		symbol := "○"
		if i == w.pdfIdx {
			style = w.styles.Selected
			symbol = "●"
		}
		b.WriteString(style.Render(symbol + " " + opt.Label))
		b.WriteString("\n")
	}

	b.WriteString(w.styles.Help.Render("\ny/n toggle • enter continue • esc back"))
	return b.String()
}

func (w AnalyzeWizard) viewOutput() string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Output"))
	b.WriteString("\n\n")
	b.WriteString(w.output.View())
	b.WriteString("\n")
	b.WriteString(w.styles.Help.Render("\ntab complete path • enter continue • esc back"))
	return b.String()
}

func (w AnalyzeWizard) viewReview() string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Review"))
	b.WriteString("\n\n")

	pdf := "no"
	if w.pdfIdx == 0 && w.selectedTier().AllowsPDF() {
		pdf = "yes"
	}

	rows := []struct{ label, value string }{
		{"Plan", tierChoices[w.tierIdx].Label},
		{"Strategy", strategyChoices[w.strategyIdx].Label},
		{"PDF report", pdf},
		{"Output directory", w.output.Value()},
	}
	for _, row := range rows {
		b.WriteString(w.styles.Unselected.Render(fmt.Sprintf("  %-18s", row.label)))
		b.WriteString(w.styles.Selected.Render(row.value))
		b.WriteString("\n")
	}

	b.WriteString(w.styles.Help.Render("\nenter start analysis • esc go back"))
	return b.String()
}

// Result returns the wizard result.
func (w AnalyzeWizard) Result() AnalyzeResult {
	return w.result
}

// RunAnalyzeWizard executes the analyze wizard and returns the chosen
// options.
func RunAnalyzeWizard(inputPath string, defaults AnalyzeDefaults) (AnalyzeResult, error) {
	wizard := NewAnalyzeWizard(inputPath, defaults)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return AnalyzeResult{Cancelled: true}, err
	}

	return model.(AnalyzeWizard).Result(), nil
}
