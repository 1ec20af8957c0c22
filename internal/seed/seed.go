// Package seed holds the starter question packs a fresh install ships
// with, so a host can run a game before importing anything.
package seed

import "github.com/jvirtane/barfeud/internal/game"

// SetName is the name of the starter question set.
const SetName = "starter-pack"

// Questions returns the starter board questions.
func Questions() []game.Question {
	return []game.Question{
		{
			ID:       "q1",
			Text:     "Name a popular beer brand",
			Category: "Drinks",
			Answers: []game.Answer{
				{ID: 1, Text: "Budweiser", Points: 35},
				{ID: 2, Text: "Coors", Points: 25},
				{ID: 3, Text: "Miller", Points: 15},
				{ID: 4, Text: "Corona", Points: 12},
				{ID: 5, Text: "Heineken", Points: 8},
				{ID: 6, Text: "Guinness", Points: 5},
			},
		},
		{
			ID:       "q2",
			Text:     "Name something you shout at the TV during a game",
			Category: "Sports",
			Answers: []game.Answer{
				{ID: 1, Text: "Come on!", Points: 40},
				{ID: 2, Text: "Defense!", Points: 25},
				{ID: 3, Text: "Go go go!", Points: 20},
				{ID: 4, Text: "Ref, are you blind?", Points: 15},
			},
		},
		{
			ID:       "q3",
			Text:     "Name a popular bar snack",
			Category: "Food",
			Answers: []game.Answer{
				{ID: 1, Text: "Wings", Points: 35},
				{ID: 2, Text: "Nachos", Points: 25},
				{ID: 3, Text: "Pretzels", Points: 20},
				{ID: 4, Text: "Peanuts", Points: 12},
				{ID: 5, Text: "Fries", Points: 8},
			},
		},
		{
			ID:       "q4",
			Text:     "Name an excuse for missing a round",
			Category: "General",
			Answers: []game.Answer{
				{ID: 1, Text: "Bathroom break", Points: 40},
				{ID: 2, Text: "On the phone", Points: 30},
				{ID: 3, Text: "Driving tonight", Points: 20},
				{ID: 4, Text: "Early morning", Points: 10},
			},
		},
	}
}

// FastMoney returns the default fast money pack.
func FastMoney() []game.FastMoneyQuestion {
	return []game.FastMoneyQuestion{
		{
			ID:   "fm1",
			Text: "Name a popular beer brand",
			Answers: []game.BankEntry{
				{Text: "Budweiser", Points: 45},
				{Text: "Coors", Points: 20},
				{Text: "Miller", Points: 15},
				{Text: "Corona", Points: 10},
				{Text: "Heineken", Points: 5},
			},
		},
		{
			ID:   "fm2",
			Text: "Name something you order at a bar",
			Answers: []game.BankEntry{
				{Text: "Beer", Points: 40},
				{Text: "Cocktail", Points: 25},
				{Text: "Shot", Points: 15},
				{Text: "Wine", Points: 10},
				{Text: "Water", Points: 5},
			},
		},
		{
			ID:   "fm3",
			Text: "Name a popular bar game",
			Answers: []game.BankEntry{
				{Text: "Pool", Points: 50},
				{Text: "Darts", Points: 30},
				{Text: "Trivia", Points: 10},
				{Text: "Cards", Points: 5},
				{Text: "Shuffleboard", Points: 3},
			},
		},
		{
			ID:   "fm4",
			Text: "Name a reason to go to a bar",
			Answers: []game.BankEntry{
				{Text: "Socialize", Points: 35},
				{Text: "Watch Sports", Points: 30},
				{Text: "Drink", Points: 20},
				{Text: "Meet People", Points: 10},
				{Text: "Celebrate", Points: 5},
			},
		},
		{
			ID:   "fm5",
			Text: "Name a popular cocktail",
			Answers: []game.BankEntry{
				{Text: "Margarita", Points: 40},
				{Text: "Martini", Points: 25},
				{Text: "Mojito", Points: 15},
				{Text: "Old Fashioned", Points: 10},
				{Text: "Cosmopolitan", Points: 5},
			},
		},
	}
}
