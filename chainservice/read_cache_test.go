// Copyright (c) 2022 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package chainservice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadKeyHash(t *testing.T) {
	r := require.New(t)
	k := &ReadKey{
		Name:   "donation",
		Height: 3,
		Method: []byte("get_donation_for_id"),
		Args:   [][]byte{[]byte("io1abc")},
	}
	same := *k
	r.Equal(k.Hash(), same.Hash())

	for _, other := range []ReadKey{
		{Name: "account", Height: 3, Method: k.Method, Args: k.Args},
		{Name: k.Name, Height: 4, Method: k.Method, Args: k.Args},
		{Name: k.Name, Height: 3, Method: []byte("get_total_number_donations"), Args: k.Args},
		{Name: k.Name, Height: 3, Method: k.Method, Args: [][]byte{[]byte("io1abd")}},
	} {
		other := other
		r.NotEqual(k.Hash(), other.Hash())
	}
}

func TestReadCache(t *testing.T) {
	r := require.New(t)
	rc := NewReadCache()
	k := &ReadKey{Name: "donation", Height: 1, Method: []byte("get_name_beneficiary")}

	_, ok := rc.Get(k)
	r.False(ok)
	rc.Put(k, []byte("io1beneficiary"))
	d, ok := rc.Get(k)
	r.True(ok)
	r.Equal([]byte("io1beneficiary"), d)
	total, hit := rc.Stats()
	r.EqualValues(2, total)
	r.EqualValues(1, hit)

	rc.Clear()
	_, ok = rc.Get(k)
	r.False(ok)
}
