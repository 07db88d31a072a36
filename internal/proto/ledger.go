package proto

import "google.golang.org/protobuf/encoding/protowire"

type GetLedgerInfoRequest struct{}

func (m *GetLedgerInfoRequest) MarshalWire(b []byte) []byte   { return b }
func (m *GetLedgerInfoRequest) UnmarshalWire(b []byte) error { return consumeFields(b, skipAll) }

type GetLedgerInfoResponse struct {
	ChainId         uint64
	RegistryAddress string
}

func (m *GetLedgerInfoResponse) MarshalWire(b []byte) []byte {
	b = appendUint64(b, 1, m.ChainId)
	return appendString(b, 2, m.RegistryAddress)
}

func (m *GetLedgerInfoResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readUint64(typ, b, &m.ChainId)
		case 2:
			return readString(typ, b, &m.RegistryAddress)
		}
		return 0, nil
	})
}

type GetChallengeRequest struct {
	Address string
}

func (m *GetChallengeRequest) MarshalWire(b []byte) []byte { return appendString(b, 1, m.Address) }

func (m *GetChallengeRequest) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Address)
		}
		return 0, nil
	})
}

type GetChallengeResponse struct {
	Nonce     string
	ExpiresAt int64
}

func (m *GetChallengeResponse) MarshalWire(b []byte) []byte {
	b = appendString(b, 1, m.Nonce)
	return appendInt64(b, 2, m.ExpiresAt)
}

func (m *GetChallengeResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Nonce)
		case 2:
			return readInt64(typ, b, &m.ExpiresAt)
		}
		return 0, nil
	})
}

type LoginRequest struct {
	Address   string
	Nonce     string
	Signature []byte
}

func (m *LoginRequest) MarshalWire(b []byte) []byte {
	b = appendString(b, 1, m.Address)
	b = appendString(b, 2, m.Nonce)
	return appendBytes(b, 3, m.Signature)
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Address)
		case 2:
			return readString(typ, b, &m.Nonce)
		case 3:
			return readBytes(typ, b, &m.Signature)
		}
		return 0, nil
	})
}

// appendTokenPair and readTokenPair encode the shared layout of LoginResponse and RefreshTokenResponse.
func appendTokenPair(b []byte, access, refresh string) []byte {
	b = appendString(b, 1, access)
	return appendString(b, 2, refresh)
}

func readTokenPair(b []byte, access, refresh *string) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, access)
		case 2:
			return readString(typ, b, refresh)
		}
		return 0, nil
	})
}

type LoginResponse struct {
	AccessToken  string
	RefreshToken string
}

func (m *LoginResponse) MarshalWire(b []byte) []byte {
	return appendTokenPair(b, m.AccessToken, m.RefreshToken)
}

func (m *LoginResponse) UnmarshalWire(b []byte) error {
	return readTokenPair(b, &m.AccessToken, &m.RefreshToken)
}

type RefreshTokenRequest struct {
	RefreshToken string
}

func (m *RefreshTokenRequest) MarshalWire(b []byte) []byte { return appendString(b, 1, m.RefreshToken) }

func (m *RefreshTokenRequest) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.RefreshToken)
		}
		return 0, nil
	})
}

type RefreshTokenResponse struct {
	AccessToken  string
	RefreshToken string
}

func (m *RefreshTokenResponse) MarshalWire(b []byte) []byte {
	return appendTokenPair(b, m.AccessToken, m.RefreshToken)
}

func (m *RefreshTokenResponse) UnmarshalWire(b []byte) error {
	return readTokenPair(b, &m.AccessToken, &m.RefreshToken)
}

type CreateRecordRequest struct {
	Category    uint32
	Title       string
	Description string
	Handle      []byte
	Proof       []byte
}

func (m *CreateRecordRequest) MarshalWire(b []byte) []byte {
	b = appendUint64(b, 1, uint64(m.Category))
	b = appendString(b, 2, m.Title)
	b = appendString(b, 3, m.Description)
	b = appendBytes(b, 4, m.Handle)
	return appendBytes(b, 5, m.Proof)
}

func (m *CreateRecordRequest) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readUint32(typ, b, &m.Category)
		case 2:
			return readString(typ, b, &m.Title)
		case 3:
			return readString(typ, b, &m.Description)
		case 4:
			return readBytes(typ, b, &m.Handle)
		case 5:
			return readBytes(typ, b, &m.Proof)
		}
		return 0, nil
	})
}

type CreateRecordResponse struct {
	Id uint64
}

func (m *CreateRecordResponse) MarshalWire(b []byte) []byte { return appendUint64(b, 1, m.Id) }

func (m *CreateRecordResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readUint64(typ, b, &m.Id)
		}
		return 0, nil
	})
}

type Record struct {
	Id                   uint64
	Owner                string
	Category             uint32
	Title                string
	Description          string
	CreatedAt            int64
	HasConfidentialField bool
	Handle               []byte
}

func (m *Record) MarshalWire(b []byte) []byte {
	b = appendUint64(b, 1, m.Id)
	b = appendString(b, 2, m.Owner)
	b = appendUint64(b, 3, uint64(m.Category))
	b = appendString(b, 4, m.Title)
	b = appendString(b, 5, m.Description)
	b = appendInt64(b, 6, m.CreatedAt)
	b = appendBool(b, 7, m.HasConfidentialField)
	return appendBytes(b, 8, m.Handle)
}

func (m *Record) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readUint64(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.Owner)
		case 3:
			return readUint32(typ, b, &m.Category)
		case 4:
			return readString(typ, b, &m.Title)
		case 5:
			return readString(typ, b, &m.Description)
		case 6:
			return readInt64(typ, b, &m.CreatedAt)
		case 7:
			return readBool(typ, b, &m.HasConfidentialField)
		case 8:
			return readBytes(typ, b, &m.Handle)
		}
		return 0, nil
	})
}

type GetRecordRequest struct {
	Id uint64
}

func (m *GetRecordRequest) MarshalWire(b []byte) []byte { return appendUint64(b, 1, m.Id) }

func (m *GetRecordRequest) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readUint64(typ, b, &m.Id)
		}
		return 0, nil
	})
}

type GetRecordResponse struct {
	Record *Record
}

func (m *GetRecordResponse) MarshalWire(b []byte) []byte {
	if m.Record == nil {
		return b
	}
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	return protowire.AppendBytes(b, m.Record.MarshalWire(nil))
}

func (m *GetRecordResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		var raw []byte
		n, err := readBytes(typ, b, &raw)
		if err != nil {
			return 0, err
		}
		m.Record = &Record{}
		return n, m.Record.UnmarshalWire(raw)
	})
}

type GetOwnerRecordIdsRequest struct {
	Owner string
}

func (m *GetOwnerRecordIdsRequest) MarshalWire(b []byte) []byte { return appendString(b, 1, m.Owner) }

func (m *GetOwnerRecordIdsRequest) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Owner)
		}
		return 0, nil
	})
}

type GetOwnerRecordIdsResponse struct {
	Ids []uint64
}

func (m *GetOwnerRecordIdsResponse) MarshalWire(b []byte) []byte { return appendPacked(b, 1, m.Ids) }

func (m *GetOwnerRecordIdsResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readRepeated(typ, b, &m.Ids)
		}
		return 0, nil
	})
}

type GetTotalRecordsRequest struct{}

func (m *GetTotalRecordsRequest) MarshalWire(b []byte) []byte   { return b }
func (m *GetTotalRecordsRequest) UnmarshalWire(b []byte) error { return consumeFields(b, skipAll) }

type GetTotalRecordsResponse struct {
	Total uint64
}

func (m *GetTotalRecordsResponse) MarshalWire(b []byte) []byte { return appendUint64(b, 1, m.Total) }

func (m *GetTotalRecordsResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readUint64(typ, b, &m.Total)
		}
		return 0, nil
	})
}

type LookupGrantRequest struct {
	Handle    []byte
	Principal string
}

func (m *LookupGrantRequest) MarshalWire(b []byte) []byte {
	b = appendBytes(b, 1, m.Handle)
	return appendString(b, 2, m.Principal)
}

func (m *LookupGrantRequest) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readBytes(typ, b, &m.Handle)
		case 2:
			return readString(typ, b, &m.Principal)
		}
		return 0, nil
	})
}

type LookupGrantResponse struct {
	Allowed    bool
	Entity     string
	Submitter  string
	Ciphertext []byte
}

func (m *LookupGrantResponse) MarshalWire(b []byte) []byte {
	b = appendBool(b, 1, m.Allowed)
	b = appendString(b, 2, m.Entity)
	b = appendString(b, 3, m.Submitter)
	return appendBytes(b, 4, m.Ciphertext)
}

func (m *LookupGrantResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readBool(typ, b, &m.Allowed)
		case 2:
			return readString(typ, b, &m.Entity)
		case 3:
			return readString(typ, b, &m.Submitter)
		case 4:
			return readBytes(typ, b, &m.Ciphertext)
		}
		return 0, nil
	})
}

type PingRequest struct{}

func (m *PingRequest) MarshalWire(b []byte) []byte   { return b }
func (m *PingRequest) UnmarshalWire(b []byte) error { return consumeFields(b, skipAll) }

type PingResponse struct {
	Status string
}

func (m *PingResponse) MarshalWire(b []byte) []byte { return appendString(b, 1, m.Status) }

func (m *PingResponse) UnmarshalWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Status)
		}
		return 0, nil
	})
}
