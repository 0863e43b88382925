// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()

	path := filepath.Join(root, "data", "chain", "state.db")
	r.NoError(EnsureParentDir(path))
	info, err := os.Stat(filepath.Dir(path))
	r.NoError(err)
	r.True(info.IsDir())
	_, err = os.Stat(path)
	r.True(os.IsNotExist(err))
	// existing directory
	r.NoError(EnsureParentDir(path))

	// parent is a regular file
	file := filepath.Join(root, "file")
	r.NoError(os.WriteFile(file, nil, 0o600))
	r.Error(EnsureParentDir(filepath.Join(file, "sub", "state.db")))
}
