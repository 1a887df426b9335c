package vcs

import (
	"testing"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFileCreatesCommit(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	file, err := AddFile(dbc, branch, "F1", "hello", lead.Username)
	require.NoError(t, err)
	assert.Equal(t, "F1", file.Title)
	assert.Equal(t, "hello", file.Text)

	var commit models.Commit
	require.NoError(t, dbc.Where("branch_id = ?", branch.ID).Order("id DESC").First(&commit).Error)
	assert.Equal(t, "File F1 added", commit.LogMessage)
	assert.Equal(t, lead.Username, commit.Committer)
}

func TestAddFileValidation(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	_, err = AddFile(dbc, branch, "  ", "text", lead.Username)
	require.Error(t, err)
	assert.EqualError(t, err, "File title can't be empty")

	_, err = AddFile(dbc, branch, "F1", "text", lead.Username)
	require.NoError(t, err)

	_, err = AddFile(dbc, branch, "F1", "other", lead.Username)
	require.Error(t, err)
	assert.EqualError(t, err, "File with given title already exists")
}

func TestAddFileSameTitleOnOtherBranch(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	b1, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	b2, err := CreateBranch(dbc, project, "B2")
	require.NoError(t, err)

	_, err = AddFile(dbc, b1, "F1", "1", lead.Username)
	require.NoError(t, err)
	_, err = AddFile(dbc, b2, "F1", "2", lead.Username)
	require.NoError(t, err)
}

func TestEditFileCommitUsesOldTitle(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	file, err := AddFile(dbc, branch, "F1", "hello", lead.Username)
	require.NoError(t, err)

	edited, err := EditFile(dbc, file, "F1 renamed", "bye", lead.Username)
	require.NoError(t, err)
	assert.Equal(t, "F1 renamed", edited.Title)
	assert.Equal(t, "bye", edited.Text)

	var commit models.Commit
	require.NoError(t, dbc.Where("branch_id = ?", branch.ID).Order("id DESC").First(&commit).Error)
	assert.Equal(t, "File F1 changed", commit.LogMessage)
}

func TestEditFileValidation(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	f1, err := AddFile(dbc, branch, "F1", "1", lead.Username)
	require.NoError(t, err)
	_, err = AddFile(dbc, branch, "F2", "2", lead.Username)
	require.NoError(t, err)

	_, err = EditFile(dbc, f1, "", "text", lead.Username)
	assert.EqualError(t, err, "File title can't be empty")

	_, err = EditFile(dbc, f1, "F2", "text", lead.Username)
	assert.EqualError(t, err, "File with given title already exists")

	// Keeping the file's own title is fine.
	_, err = EditFile(dbc, f1, "F1", "updated", lead.Username)
	assert.NoError(t, err)
}

func TestDeleteFile(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	file, err := AddFile(dbc, branch, "F1", "hello", lead.Username)
	require.NoError(t, err)

	require.NoError(t, DeleteFile(dbc, file, lead.Username))

	found, err := GetFileByTitle(dbc, branch, "F1")
	require.NoError(t, err)
	assert.Nil(t, found)

	var commit models.Commit
	require.NoError(t, dbc.Where("branch_id = ?", branch.ID).Order("id DESC").First(&commit).Error)
	assert.Equal(t, "File F1 deleted", commit.LogMessage)
}

func TestGetFileByTitleAbsent(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	file, err := GetFileByTitle(dbc, branch, "missing")
	require.NoError(t, err)
	assert.Nil(t, file)
}
