package storage

import "time"

const (
	StatusInProgress = "in-progress"
	StatusSubmitted  = "submitted"
)

// Submission is the single document the whole judging flow revolves around.
// PK is the submission id; every mutation goes through a conditional
// single-item patch, so there is no cross-item coordination anywhere.
type Submission struct {
	ID          string   `dynamodbav:"PK" json:"id"`
	ProjectName string   `dynamodbav:"ProjectName" json:"projectName"`
	Members     []string `dynamodbav:"Members" json:"members"`
	UserID      string   `dynamodbav:"UserID" json:"userId"`

	GithubURL        string `dynamodbav:"GithubURL" json:"githubUrl"`
	HostedSiteURL    string `dynamodbav:"HostedSiteURL,omitempty" json:"hostedSiteUrl,omitempty"`
	VideoOverviewURL string `dynamodbav:"VideoOverviewURL,omitempty" json:"videoOverviewUrl,omitempty"`

	Description         string `dynamodbav:"Description,omitempty" json:"description,omitempty"`
	FavoriteParts       string `dynamodbav:"FavoriteParts,omitempty" json:"favoriteParts,omitempty"`
	BiggestChallenges   string `dynamodbav:"BiggestChallenges,omitempty" json:"biggestChallenges,omitempty"`
	TestingInstructions string `dynamodbav:"TestingInstructions,omitempty" json:"testingInstructions,omitempty"`

	CreatedAt time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"UpdatedAt" json:"updatedAt"`

	Status string `dynamodbav:"Status" json:"status"`
	Shared bool   `dynamodbav:"Shared,omitempty" json:"shared,omitempty"`

	// Initial judging round. Score is a pointer because an unscored
	// submission and a scored one must stay distinguishable (a missing
	// score is not a zero score).
	Reviewed   bool    `dynamodbav:"Reviewed,omitempty" json:"reviewed,omitempty"`
	JudgeID    string  `dynamodbav:"JudgeID,omitempty" json:"judgeId,omitempty"`
	Score      *int    `dynamodbav:"Score,omitempty" json:"score,omitempty"`
	JudgeNotes string  `dynamodbav:"JudgeNotes,omitempty" json:"judgeNotes,omitempty"`

	// Finalist round. TotalFinalistScore is derived from FinalistScores and
	// only ever written together with it.
	FinalistScores     []FinalistScore `dynamodbav:"FinalistScores,omitempty" json:"finalistScores,omitempty"`
	TotalFinalistScore int             `dynamodbav:"TotalFinalistScore,omitempty" json:"totalFinalistScore,omitempty"`

	// Version guards read-modify-write patches (finalist upsert).
	Version int64 `dynamodbav:"Version,omitempty" json:"-"`
}

// FinalistScore is one judge's rating of a finalist. JudgeID is the dedup
// key: a judge re-scoring replaces their entry, it never appends a second one.
type FinalistScore struct {
	JudgeID     string    `dynamodbav:"JudgeID" json:"judgeId"`
	Score       int       `dynamodbav:"Score" json:"score"`
	SubmittedAt time.Time `dynamodbav:"SubmittedAt" json:"submittedAt"`
}
