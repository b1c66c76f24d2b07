package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pseudomuto/migrokit/pkg/schema"
)

func TestApplyIgnoreList_RemovesOnlyNamedTables(t *testing.T) {
	db := schema.NewDatabase("test")
	db.Objects[schema.KindTable]["users"] = schema.Object{Name: "users"}
	db.Objects[schema.KindTable]["sessions"] = schema.Object{Name: "sessions"}

	applyIgnoreList(db, []string{"sessions"})

	_, hasUsers := db.Objects[schema.KindTable]["users"]
	_, hasSessions := db.Objects[schema.KindTable]["sessions"]
	require.True(t, hasUsers)
	require.False(t, hasSessions)
}

func TestDualDDLSource_PrefersSrcThenFallsBackToDest(t *testing.T) {
	src := fakeGetter{ddl: map[string]string{"users": "CREATE TABLE users (id INT)"}}
	dest := fakeGetter{ddl: map[string]string{"orders": "CREATE TABLE orders (id INT)"}}
	d := dualDDLSource{src: src, dest: dest}

	ctx := context.Background()
	text, err := d.GetDDL(ctx, schema.KindTable, "users")
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE users (id INT)", text)

	text, err = d.GetDDL(ctx, schema.KindTable, "orders")
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE orders (id INT)", text)

	_, err = d.GetDDL(ctx, schema.KindTable, "missing")
	require.Error(t, err)
}

func TestDualDDLSource_NoSourcesConfigured(t *testing.T) {
	d := dualDDLSource{}
	_, err := d.GetDDL(context.Background(), schema.KindTable, "users")
	require.Error(t, err)
}

type fakeGetter struct {
	ddl map[string]string
}

func (f fakeGetter) GetDDL(ctx context.Context, kind schema.Kind, name string) (string, error) {
	if text, ok := f.ddl[name]; ok {
		return text, nil
	}
	return "", errors.New("not found")
}
