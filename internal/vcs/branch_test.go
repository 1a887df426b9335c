package vcs

import (
	"testing"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBranchEmptyName(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	_, err := CreateBranch(dbc, project, "   ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "Branch name can't be empty")
}

func TestCreateBranchDuplicateName(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	_, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	_, err = CreateBranch(dbc, project, "B1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "Branch name already exists")
}

func TestCreateBranchSameNameInOtherProject(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	p1 := createProject(t, dbc, lead, "Project 1")
	p2 := createProject(t, dbc, lead, "Project 2")

	_, err := CreateBranch(dbc, p1, "main")
	require.NoError(t, err)

	_, err = CreateBranch(dbc, p2, "main")
	require.NoError(t, err)
}

func TestFirstBranchBecomesDefault(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	first, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := CreateBranch(dbc, project, "B2")
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	var count int64
	require.NoError(t, dbc.Model(&models.Branch{}).
		Where("project_id = ? AND is_default = ?", project.ID, true).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateBranchNotifiesWatchers(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	watcher := createUser(t, dbc, "watcher")
	project := createProject(t, dbc, lead, "Project 1")
	addWatcher(t, dbc, project, watcher)

	_, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	messages := updateMessages(t, dbc, watcher)
	require.Len(t, messages, 1)
	assert.Equal(t, "Branch B1 added to project Project 1", messages[0])
}

func TestRenameBranch(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	watcher := createUser(t, dbc, "watcher")
	project := createProject(t, dbc, lead, "Project 1")
	addWatcher(t, dbc, project, watcher)

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	renamed, err := RenameBranch(dbc, branch, "B2")
	require.NoError(t, err)
	assert.Equal(t, "B2", renamed.Name)

	// The rename notification carries the old name.
	messages := updateMessages(t, dbc, watcher)
	require.Len(t, messages, 2)
	assert.Equal(t, "Branch B1 changed to B2", messages[1])
}

func TestRenameBranchValidation(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	b1, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	_, err = CreateBranch(dbc, project, "B2")
	require.NoError(t, err)

	_, err = RenameBranch(dbc, b1, "")
	assert.EqualError(t, err, "Branch name can't be empty")

	_, err = RenameBranch(dbc, b1, "B2")
	assert.EqualError(t, err, "Branch name already exists")

	// Renaming to the branch's own name is allowed.
	_, err = RenameBranch(dbc, b1, "B1")
	assert.NoError(t, err)
}

func TestDeleteBranchPermission(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	contributor := createUser(t, dbc, "contributor")
	stranger := createUser(t, dbc, "stranger")
	project := createProject(t, dbc, lead, "Project 1")
	addContributor(t, dbc, project, contributor)

	b1, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	err = DeleteBranch(dbc, b1, stranger.Username)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = DeleteBranch(dbc, b1, contributor.Username)
	assert.NoError(t, err)
}

func TestDeleteBranchCascades(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	_, err = AddFile(dbc, branch, "F1", "text", lead.Username)
	require.NoError(t, err)

	require.NoError(t, DeleteBranch(dbc, branch, lead.Username))

	var files, commits int64
	require.NoError(t, dbc.Model(&models.File{}).Where("branch_id = ?", branch.ID).Count(&files).Error)
	require.NoError(t, dbc.Model(&models.Commit{}).Where("branch_id = ?", branch.ID).Count(&commits).Error)
	assert.EqualValues(t, 0, files)
	assert.EqualValues(t, 0, commits)
}

func TestDeleteDefaultBranchPromotesSurvivor(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	b1, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	b2, err := CreateBranch(dbc, project, "B2")
	require.NoError(t, err)
	b3, err := CreateBranch(dbc, project, "B3")
	require.NoError(t, err)

	require.NoError(t, DeleteBranch(dbc, b1, lead.Username))

	var promoted models.Branch
	require.NoError(t, dbc.Where("project_id = ? AND is_default = ?", project.ID, true).First(&promoted).Error)
	assert.Equal(t, b2.ID, promoted.ID)

	var count int64
	require.NoError(t, dbc.Model(&models.Branch{}).
		Where("project_id = ? AND is_default = ?", project.ID, true).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, DeleteBranch(dbc, &promoted, lead.Username))
	require.NoError(t, DeleteBranch(dbc, b3, lead.Username))

	var remaining int64
	require.NoError(t, dbc.Model(&models.Branch{}).Where("project_id = ?", project.ID).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)
}

func TestDeleteNonDefaultBranchKeepsDefault(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	b1, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	b2, err := CreateBranch(dbc, project, "B2")
	require.NoError(t, err)

	require.NoError(t, DeleteBranch(dbc, b2, lead.Username))

	var def models.Branch
	require.NoError(t, dbc.Where("project_id = ? AND is_default = ?", project.ID, true).First(&def).Error)
	assert.Equal(t, b1.ID, def.ID)
}

func TestSetDefault(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	b1, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)
	b2, err := CreateBranch(dbc, project, "B2")
	require.NoError(t, err)

	require.NoError(t, SetDefault(dbc, b2))

	var fresh1, fresh2 models.Branch
	require.NoError(t, dbc.First(&fresh1, b1.ID).Error)
	require.NoError(t, dbc.First(&fresh2, b2.ID).Error)
	assert.False(t, fresh1.IsDefault)
	assert.True(t, fresh2.IsDefault)
}

func TestCopyBranch(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	source, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	_, err = AddFile(dbc, source, "F1", "one", lead.Username)
	require.NoError(t, err)
	_, err = AddFile(dbc, source, "F2", "two", lead.Username)
	require.NoError(t, err)

	copied, err := CopyBranch(dbc, source, "B1 copy")
	require.NoError(t, err)
	assert.False(t, copied.IsDefault)

	sourceFiles, err := GetFiles(dbc, source)
	require.NoError(t, err)
	copiedFiles, err := GetFiles(dbc, copied)
	require.NoError(t, err)

	require.Len(t, copiedFiles, len(sourceFiles))
	for i := range sourceFiles {
		assert.Equal(t, sourceFiles[i].Title, copiedFiles[i].Title)
		assert.Equal(t, sourceFiles[i].Text, copiedFiles[i].Text)
		assert.NotEqual(t, sourceFiles[i].ID, copiedFiles[i].ID)
	}

	var sourceCommits, copiedCommits []models.Commit
	require.NoError(t, dbc.Where("branch_id = ?", source.ID).Order("id").Find(&sourceCommits).Error)
	require.NoError(t, dbc.Where("branch_id = ?", copied.ID).Order("id").Find(&copiedCommits).Error)

	require.Len(t, copiedCommits, len(sourceCommits))
	for i := range sourceCommits {
		assert.Equal(t, sourceCommits[i].LogMessage, copiedCommits[i].LogMessage)
		assert.Equal(t, sourceCommits[i].Committer, copiedCommits[i].Committer)
		assert.True(t, sourceCommits[i].DateTime.Equal(copiedCommits[i].DateTime))
		assert.NotEqual(t, sourceCommits[i].ID, copiedCommits[i].ID)
	}
}

func TestCopyBranchValidation(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	source, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	_, err = CopyBranch(dbc, source, " ")
	assert.EqualError(t, err, "Branch name can't be empty")

	// Reusing the source branch's own name is rejected too.
	_, err = CopyBranch(dbc, source, "B1")
	assert.EqualError(t, err, "Branch name already exists")
}

func TestGetCommitsNewestFirst(t *testing.T) {
	dbc := newTestDB(t)
	lead := createUser(t, dbc, "lead")
	project := createProject(t, dbc, lead, "Project 1")

	branch, err := CreateBranch(dbc, project, "B1")
	require.NoError(t, err)

	_, err = AddFile(dbc, branch, "F1", "one", lead.Username)
	require.NoError(t, err)
	_, err = AddFile(dbc, branch, "F2", "two", lead.Username)
	require.NoError(t, err)

	commits, err := GetCommits(dbc, branch)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "File F2 added", commits[0].LogMessage)
	assert.Equal(t, "File F1 added", commits[1].LogMessage)
}
