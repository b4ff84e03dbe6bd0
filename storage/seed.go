package storage

import "project/models"

// DefaultTasks is the task catalog a fresh deployment starts with.
func DefaultTasks() []models.Task {
	return []models.Task{
		{Title: "Follow @brandaccount", Description: "Follow the account and screenshot", Reward: 1500, TaskType: models.TaskTypeFollow, IsActive: true},
		{Title: "Like 5 Recent Posts", Description: "Like the last 5 posts from @targetaccount", Reward: 1000, TaskType: models.TaskTypeLike, IsActive: true},
		{Title: "Share Story", Description: "Share the brand post to your story", Reward: 2500, TaskType: models.TaskTypeShare, IsActive: true},
		{Title: "Premium Follow Campaign", Description: "Follow 10 premium brand accounts", Reward: 15000, TaskType: models.TaskTypeFollow, IsAdvanced: true, IsActive: true},
		{Title: "Reel Engagement", Description: "Like, comment and share brand reels", Reward: 20000, TaskType: models.TaskTypeCustom, IsAdvanced: true, IsActive: true},
	}
}

// DefaultSettings holds the user-facing notices a fresh deployment starts with.
func DefaultSettings() map[string]string {
	return map[string]string{
		"upiMessage": "UPI payments are accessible after 2 days",
	}
}
