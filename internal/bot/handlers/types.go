package handlers

import (
	"github.com/JoeAtk/GymPT/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	ChatSvc     interfaces.ChatServiceInterface
	GoalSvc     interfaces.GoalServiceInterface
	WorkoutSvc  interfaces.WorkoutServiceInterface
	ProgressSvc interfaces.ProgressServiceInterface
}
