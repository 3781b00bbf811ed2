package models

import "github.com/hackday-platform/judging-api/storage"

// CreateSubmissionRequest seeds a submission record through the admin API.
// Regular authoring happens in the participant-facing app, not here.
type CreateSubmissionRequest struct {
	ProjectName string   `json:"projectName" binding:"required"`
	Members     []string `json:"members" binding:"required,min=1"`
	UserID      string   `json:"userId"`

	GithubURL        string `json:"githubUrl" binding:"required"`
	HostedSiteURL    string `json:"hostedSiteUrl"`
	VideoOverviewURL string `json:"videoOverviewUrl"`

	Description         string `json:"description"`
	FavoriteParts       string `json:"favoriteParts"`
	BiggestChallenges   string `json:"biggestChallenges"`
	TestingInstructions string `json:"testingInstructions"`

	Status string `json:"status" binding:"required,oneof=in-progress submitted"`
	Shared bool   `json:"shared"`
}

// FinalistForJudgeResponse is a finalist plus the requesting judge's own
// score, when they have one.
type FinalistForJudgeResponse struct {
	*storage.Submission
	JudgeScore *int `json:"judgeScore,omitempty"`
}

// GalleryEntry is the trimmed public view of a shared submission. Judging
// fields never leave through the gallery.
type GalleryEntry struct {
	ID               string   `json:"id"`
	ProjectName      string   `json:"projectName"`
	Members          []string `json:"members"`
	GithubURL        string   `json:"githubUrl"`
	HostedSiteURL    string   `json:"hostedSiteUrl,omitempty"`
	VideoOverviewURL string   `json:"videoOverviewUrl,omitempty"`
	Status           string   `json:"status"`
}

func TransformSubmissionToGalleryEntry(s *storage.Submission) GalleryEntry {
	return GalleryEntry{
		ID:               s.ID,
		ProjectName:      s.ProjectName,
		Members:          s.Members,
		GithubURL:        s.GithubURL,
		HostedSiteURL:    s.HostedSiteURL,
		VideoOverviewURL: s.VideoOverviewURL,
		Status:           s.Status,
	}
}

type WinnerIDEntry struct {
	ID string `json:"id"`
}
