/**
* Name: 			state.go
* Description: 		상담 온보딩 단계 상태 머신 (순수 reducer)
* Workflow: 		Welcome → SkinType → Concerns → Products → Loading → Result
 */

package onboarding

import (
	"SkinProtocol_Backend/internal/models"
	"errors"
	"strings"
)

type Step int

const (
	StepWelcome Step = iota
	StepSkinType
	StepConcerns
	StepProducts
	StepLoading
	StepResult
)

var stepNames = [...]string{"Welcome", "SkinType", "Concerns", "Products", "Loading", "Result"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "Unknown"
	}
	return stepNames[s]
}

var ErrMissingResult = errors.New("onboarding: generation succeeded without a result")

type State struct {
	Step   Step
	Input  models.ConsultationInput
	Result *models.ProtocolResult
	// 마지막 생성 실패 원인, 다시 제출하면 지워짐
	Err error
}

func Initial() State {
	return State{Step: StepWelcome, Input: models.ConsultationInput{Concerns: []string{}}}
}

// Action is one user or network event fed to Reduce.
type Action interface {
	isAction()
}

type (
	Start          struct{}
	SelectSkinType struct{ SkinType models.SkinType }
	ToggleConcern  struct{ Concern string }
	SetProducts    struct{ Products string }
	Next           struct{}
	Back           struct{}
	Submit         struct{}

	GenerationSucceeded struct{ Result *models.ProtocolResult }
	GenerationFailed    struct{ Err error }

	Restart struct{}
	Reset   struct{}
)

func (Start) isAction()               {}
func (SelectSkinType) isAction()      {}
func (ToggleConcern) isAction()       {}
func (SetProducts) isAction()         {}
func (Next) isAction()                {}
func (Back) isAction()                {}
func (Submit) isAction()              {}
func (GenerationSucceeded) isAction() {}
func (GenerationFailed) isAction()    {}
func (Restart) isAction()             {}
func (Reset) isAction()               {}

// Reduce returns the state after applying a. It never mutates s. Actions
// that do not apply to the current step leave the state unchanged.
func Reduce(s State, a Action) State {
	next := s
	next.Input = s.Input.Clone()

	switch a := a.(type) {
	case Start:
		if s.Step == StepWelcome {
			next.Step = StepSkinType
		}

	case SelectSkinType:
		if s.Step == StepSkinType {
			next.Input.SkinType = a.SkinType
		}

	case ToggleConcern:
		if s.Step == StepConcerns {
			next.Input.Concerns = s.Input.ToggleConcern(a.Concern)
		}

	case SetProducts:
		if s.Step == StepProducts {
			next.Input.Products = a.Products
		}

	case Next:
		if CanContinue(s) && s.Step < StepProducts {
			next.Step = s.Step + 1
		}

	case Back:
		switch {
		case s.Step == StepResult:
			next.Step = StepProducts
			next.Result = nil
		case s.Step > StepSkinType && s.Step < StepLoading:
			next.Step = s.Step - 1
		}

	case Submit:
		if s.Step == StepProducts {
			next.Step = StepLoading
			next.Err = nil
		}

	case GenerationSucceeded:
		if s.Step != StepLoading {
			break
		}
		if a.Result == nil {
			next.Step = StepProducts
			next.Err = ErrMissingResult
			break
		}
		next.Step = StepResult
		next.Result = a.Result

	case GenerationFailed:
		if s.Step == StepLoading {
			next.Step = StepProducts
			next.Err = a.Err
		}

	case Restart:
		next = Initial()
		next.Step = StepSkinType

	case Reset:
		next = Initial()
	}

	return next
}

// CanContinue reports whether the "continue" affordance is enabled.
func CanContinue(s State) bool {
	switch s.Step {
	case StepWelcome, StepProducts:
		return true
	case StepSkinType:
		return strings.TrimSpace(string(s.Input.SkinType)) != ""
	case StepConcerns:
		return len(s.Input.Concerns) > 0
	default:
		return false
	}
}
