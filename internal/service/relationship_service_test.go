package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ilmkids/internal/models"
)

func TestRelationshipService_LinkIsIdempotent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	ctx := context.Background()
	parent := env.register(t, "abu_yusuf", models.RoleParent)
	child := env.register(t, "yusuf", models.RoleChild)

	first, err := env.relationships.Link(ctx, parent.ID, child.ID)
	require.NoError(t, err)
	second, err := env.relationships.Link(ctx, parent.ID, child.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	children, err := env.relationships.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	parents, err := env.relationships.ListParents(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, parent.ID, parents[0].ID)
}

func TestRelationshipService_LinkValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	parent := env.register(t, "abu_yusuf", models.RoleParent)
	child := env.register(t, "yusuf", models.RoleChild)
	otherChild := env.register(t, "maryam", models.RoleChild)

	tests := []struct {
		name     string
		parentID int64
		childID  int64
		wantErr  error
	}{
		{name: "missing parent", parentID: 999, childID: child.ID, wantErr: ErrNotFound},
		{name: "missing child", parentID: parent.ID, childID: 999, wantErr: ErrNotFound},
		{name: "child as parent", parentID: otherChild.ID, childID: child.ID, wantErr: ErrRoleMismatch},
		{name: "parent as child", parentID: parent.ID, childID: parent.ID, wantErr: ErrRoleMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.relationships.Link(context.Background(), tt.parentID, tt.childID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRelationshipService_Unlink(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	ctx := context.Background()
	parent := env.register(t, "abu_yusuf", models.RoleParent)
	child := env.register(t, "yusuf", models.RoleChild)

	err := env.relationships.Unlink(ctx, parent.ID, child.ID)
	assert.ErrorIs(t, err, ErrRelationshipNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.relationships.Link(ctx, parent.ID, child.ID)
	require.NoError(t, err)

	linked, err := env.relationships.IsLinked(ctx, parent.ID, child.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	require.NoError(t, env.relationships.Unlink(ctx, parent.ID, child.ID))

	children, err := env.relationships.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	assert.Empty(t, children)

	assert.ErrorIs(t, env.relationships.Unlink(ctx, parent.ID, child.ID), ErrNotFound)
}

func TestRelationshipService_ListChildrenOfUnknownParent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	children, err := env.relationships.ListChildren(context.Background(), 404)
	require.NoError(t, err)
	assert.NotNil(t, children)
	assert.Empty(t, children)
}
