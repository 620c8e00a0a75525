package app

import (
	"context"
	"errors"

	"personality-quiz/internal/domain"
)

// Loader produces the definition a Player will run.
type Loader interface {
	Load(ctx context.Context) (domain.QuizDefinition, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (domain.QuizDefinition, error)

func (f LoaderFunc) Load(ctx context.Context) (domain.QuizDefinition, error) {
	return f(ctx)
}

// StaticLoader serves a definition that is already in memory.
func StaticLoader(def domain.QuizDefinition) Loader {
	return LoaderFunc(func(context.Context) (domain.QuizDefinition, error) {
		return def, nil
	})
}

// Presenter receives render instructions. It is the only output of a Player.
type Presenter interface {
	OnQuestionChanged(q domain.Question, progress Progress)
	OnFinished(outcome Outcome)
	OnLoadError(err error)
}

// Player binds one Session to the loader that feeds it and the presenter
// that shows it. It stays disabled until Load succeeds; a failed load is
// reported once and is terminal.
type Player struct {
	loader    Loader
	presenter Presenter
	session   *Session

	def     domain.QuizDefinition
	loaded  bool
	loadErr error
}

func NewPlayer(loader Loader, presenter Presenter) *Player {
	return &Player{
		loader:    loader,
		presenter: presenter,
		session:   NewSession(),
	}
}

// Load fetches the definition and checks it can be played. Any failure is
// returned as a *domain.LoadError.
func (p *Player) Load(ctx context.Context) (domain.QuizDefinition, error) {
	if p.loadErr != nil {
		return domain.QuizDefinition{}, p.loadErr
	}
	if p.loaded {
		return p.def, nil
	}

	def, err := p.loader.Load(ctx)
	if err == nil {
		err = domain.CheckPlayable(def)
	}
	if err != nil {
		var loadErr *domain.LoadError
		if !errors.As(err, &loadErr) {
			loadErr = &domain.LoadError{Err: err}
		}
		p.loadErr = loadErr
		p.presenter.OnLoadError(loadErr)
		return domain.QuizDefinition{}, loadErr
	}

	p.def = def
	p.loaded = true
	return def, nil
}

// Definition returns the loaded definition.
func (p *Player) Definition() (domain.QuizDefinition, bool) {
	return p.def, p.loaded
}

// Start begins a play-through and renders the first question.
func (p *Player) Start() error {
	if err := p.ready(); err != nil {
		return err
	}
	return p.render(p.session.Start(p.def))
}

// Answer selects answer i of the current question.
func (p *Player) Answer(i int) error {
	if err := p.ready(); err != nil {
		return err
	}
	return p.render(p.session.SelectAnswerAt(i))
}

// Restart throws the current play-through away and starts a new one.
func (p *Player) Restart() error {
	if err := p.ready(); err != nil {
		return err
	}
	if p.session.State() == NotStarted {
		return p.Start()
	}
	return p.render(p.session.Restart())
}

func (p *Player) State() State {
	return p.session.State()
}

func (p *Player) Scores() []Score {
	return p.session.Scores()
}

func (p *Player) ready() error {
	if p.loadErr != nil {
		return p.loadErr
	}
	if !p.loaded {
		return domain.ErrNotLoaded
	}
	return nil
}

func (p *Player) render(step Step, err error) error {
	if err != nil {
		return err
	}
	switch step.State {
	case InQuestion:
		p.presenter.OnQuestionChanged(step.Question, step.Progress)
	case Finished:
		p.presenter.OnFinished(*step.Outcome)
	}
	return nil
}
