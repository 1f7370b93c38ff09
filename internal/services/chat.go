package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/stitts-dev/weather-caddie/internal/profile"
)

const genericReply = "Let’s pick a smart target based on your averages and today’s wind."

var (
	sevenIronQuestion = regexp.MustCompile(`\b(7\s*-?\s*i(ron)?|seven\s+iron)\b`)
	driverQuestion    = regexp.MustCompile(`\b(driver|drv)\b`)
)

// ChatService answers typed caddie questions from the player's profile.
type ChatService struct {
	profiles       profile.Source
	aliases        profile.AliasTable
	defaultProfile string
}

// ChatReply is one answer.
type ChatReply struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Profile  string `json:"profile,omitempty"`
}

func NewChatService(profiles profile.Source, defaultProfile string) *ChatService {
	return &ChatService{
		profiles:       profiles,
		aliases:        profile.DefaultAliases(),
		defaultProfile: defaultProfile,
	}
}

// Reply answers a question. An unreadable profile still yields the
// generic answer; only an empty question is an error.
func (s *ChatService) Reply(ctx context.Context, profileID, question string) (*ChatReply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}
	if profileID == "" {
		profileID = s.defaultProfile
	}

	reply := &ChatReply{Question: question, Answer: genericReply}

	bag, err := s.profiles.Load(ctx, profileID)
	if err != nil {
		return reply, nil
	}
	reply.Profile = profileID

	q := strings.ToLower(question)
	if sevenIronQuestion.MatchString(q) {
		if found := bag.Find(s.aliases, profile.SevenIron); found.Found {
			reply.Answer = fmt.Sprintf("Your 7-iron carry ~%.0f yds (±%g).",
				math.Round(float64(found.Club.AverageCarryYards)), float64(found.Club.DispersionYards))
			return reply, nil
		}
	}
	if driverQuestion.MatchString(q) {
		if found := bag.Find(s.aliases, profile.Driver); found.Found {
			reply.Answer = fmt.Sprintf("Driver total ~%.0f yds with typical dispersion ±%g.",
				math.Round(float64(found.Club.AverageTotalYards)), float64(found.Club.DispersionYards))
			return reply, nil
		}
	}
	return reply, nil
}
