package vcs

import (
	"testing"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForkProjectDeepCopy(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	forker := createUser(t, dbc, "forker")
	project := createProject(t, dbc, lead, "Project 1")

	b1, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	b2, err := CreateBranch(dbc, project, "B2")
	require.NoError(t, err)

	_, err = AddFile(dbc, b1, "F1", "one", lead.Username)
	require.NoError(t, err)
	_, err = AddFile(dbc, b2, "F2", "two", lead.Username)
	require.NoError(t, err)

	fork, err := ForkProject(dbc, project, forker)
	require.NoError(t, err)
	assert.Equal(t, "Project 1", fork.Title)
	assert.Equal(t, forker.ID, fork.LeadID)
	require.NotNil(t, fork.ForkedFromID)
	assert.Equal(t, project.ID, *fork.ForkedFromID)

	var branches []models.Branch
	require.NoError(t, dbc.Where("project_id = ?", fork.ID).Order("id").Find(&branches).Error)
	require.Len(t, branches, 2)
	assert.Equal(t, "B1", branches[0].Name)
	assert.True(t, branches[0].IsDefault)
	assert.Equal(t, "B2", branches[1].Name)
	assert.False(t, branches[1].IsDefault)

	files, err := GetFiles(dbc, &branches[0])
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "F1", files[0].Title)
	assert.Equal(t, "one", files[0].Text)

	commits, err := GetCommits(dbc, &branches[1])
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "File F2 added", commits[0].LogMessage)
	assert.Equal(t, lead.Username, commits[0].Committer)
}

func TestForkProjectTitleCollision(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	forker := createUser(t, dbc, "forker")
	project := createProject(t, dbc, lead, "Project 1")
	createProject(t, dbc, forker, "Project 1")

	first, err := ForkProject(dbc, project, forker)
	require.NoError(t, err)
	assert.Equal(t, "Project 1_", first.Title)

	second, err := ForkProject(dbc, project, forker)
	require.NoError(t, err)
	assert.Equal(t, "Project 1__", second.Title)
}

func TestForkLeavesOriginalUntouched(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	forker := createUser(t, dbc, "forker")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	_, err = AddFile(dbc, branch, "F1", "one", lead.Username)
	require.NoError(t, err)

	fork, err := ForkProject(dbc, project, forker)
	require.NoError(t, err)

	forkBranches := []models.Branch{}
	require.NoError(t, dbc.Where("project_id = ?", fork.ID).Find(&forkBranches).Error)
	require.Len(t, forkBranches, 1)

	forkFiles, err := GetFiles(dbc, &forkBranches[0])
	require.NoError(t, err)
	require.Len(t, forkFiles, 1)

	// Editing the fork's copy must not touch the original file.
	_, err = EditFile(dbc, &forkFiles[0], "F1", "changed", forker.Username)
	require.NoError(t, err)

	original, err := GetFileByTitle(dbc, branch, "F1")
	require.NoError(t, err)
	require.NotNil(t, original)
	assert.Equal(t, "one", original.Text)
}
