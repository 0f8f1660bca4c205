package services

import (
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
)

// nopPresenter discards every event. Used when no observer is wired.
type nopPresenter struct{}

var _ ports.Presenter = nopPresenter{}

func (nopPresenter) Notify(string)                                   {}
func (nopPresenter) StatusChanged(ports.StatusStep, bool)            {}
func (nopPresenter) LocationResolved(domain.LocationFix)             {}
func (nopPresenter) AmbulanceConfirmed(*domain.RankedCandidate, int) {}
func (nopPresenter) HospitalConfirmed(*domain.RankedCandidate)       {}
func (nopPresenter) SystemMessage(string)                            {}
func (nopPresenter) UserMessage(string)                              {}
func (nopPresenter) Typing(bool)                                     {}
func (nopPresenter) QuestionAsked(domain.Question)                   {}
func (nopPresenter) GuidanceReady([]domain.GuidanceStep)             {}
func (nopPresenter) Hint(string)                                     {}
