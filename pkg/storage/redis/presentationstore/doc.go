/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presentationstore

import (
	"encoding/json"
	"time"

	"github.com/hyperledger/aries-framework-go/pkg/doc/presexch"
)

type presentationDocument struct {
	ID                       string                           `json:"id"`
	RequestID                string                           `json:"requestId"`
	Kind                     string                           `json:"kind"`
	IDTokenTypes             []string                         `json:"idTokenTypes,omitempty"`
	PresentationDefinition   *presexch.PresentationDefinition `json:"presentationDefinition,omitempty"`
	State                    int                              `json:"state"`
	InitiatedAt              time.Time                        `json:"initiatedAt"`
	RequestObjectRetrievedAt *time.Time                       `json:"requestObjectRetrievedAt,omitempty"`
	ExpireAt                 time.Time                        `json:"expireAt"`
}

func (d *presentationDocument) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}

func (d *presentationDocument) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, d)
}
