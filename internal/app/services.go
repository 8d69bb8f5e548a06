package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/klemjul/menta/internal/format"
	"github.com/klemjul/menta/internal/llm"
	"github.com/klemjul/menta/internal/logger"
	"github.com/klemjul/menta/internal/ui"
	"go.uber.org/zap"
)

type TUIService interface {
	InitialModel(opts ui.InitialModelOptions) ui.ChatTUIModel
	Run(model ui.ChatTUIModel) (returnModel tea.Model, returnErr error)
}

type LLMService interface {
	NewClient(provider llm.LLMProvider, opts llm.LLMClientOptions) (llm.LLMClient, error)
}

type TextFormatService interface {
	FormatMarkdown(text string) (string, error)
}

type LogService interface {
	NewLogger(path string, debug bool) (*zap.Logger, func(), error)
}

type App interface {
	TUI() TUIService
	LLM() LLMService
	Format() TextFormatService
	Log() LogService
}

type DefaultTUIService struct{}

type DefaultLLMService struct{}

type DefaultTextFormatService struct{}

type DefaultLogService struct{}

type DefaultApp struct {
	tui    TUIService
	llm    LLMService
	format TextFormatService
	log    LogService
}

func (a *DefaultApp) TUI() TUIService           { return a.tui }
func (a *DefaultApp) LLM() LLMService           { return a.llm }
func (a *DefaultApp) Format() TextFormatService { return a.format }
func (a *DefaultApp) Log() LogService           { return a.log }

func (c *DefaultTUIService) InitialModel(opts ui.InitialModelOptions) ui.ChatTUIModel {
	return ui.InitialModel(opts)
}
func (c *DefaultTUIService) Run(model ui.ChatTUIModel) (returnModel tea.Model, returnErr error) {
	return tea.NewProgram(model, tea.WithAltScreen()).Run()
}

func (l *DefaultLLMService) NewClient(provider llm.LLMProvider, opts llm.LLMClientOptions) (llm.LLMClient, error) {
	return llm.NewClient(provider, opts)
}

func (l *DefaultTextFormatService) FormatMarkdown(text string) (string, error) {
	return format.FormatMarkdown(text)
}

func (l *DefaultLogService) NewLogger(path string, debug bool) (*zap.Logger, func(), error) {
	return logger.NewLogger(path, debug)
}

func NewDefaultApp() App {
	return &DefaultApp{
		tui:    &DefaultTUIService{},
		llm:    &DefaultLLMService{},
		format: &DefaultTextFormatService{},
		log:    &DefaultLogService{},
	}
}
