/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mock

// Identity reports a caller that tests can switch at will
type Identity struct {
	MSPID string
	Err   error
}

func (i *Identity) CallerMSPID() (string, error) {
	if i.Err != nil {
		return "", i.Err
	}
	return i.MSPID, nil
}
