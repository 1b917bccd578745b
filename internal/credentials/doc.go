// Package credentials persists the EMS token pair.
//
// A session lives in exactly one of two slots:
//
//   - the durable slot (FileSlot or RedisSlot) survives process restarts and
//     is used when the user asked to be remembered;
//   - the session slot (MemorySlot) lives only as long as the process.
//
// Store enforces that policy in one place: writing to one slot clears the
// other, and reads prefer the durable slot because it reflects an explicit
// "remember me" choice.
//
// # Storage layout
//
// Both slots hold the same JSON record:
//
//	{"access": "...", "refresh": "...", "persistent": true}
//
// The file slot writes it to {storage-dir}/ems_auth.json with 0600
// permissions inside a 0700 directory.
//
// # Security
//
// Token values are never logged. Audit log lines carry only the slot name
// and whether a refresh token is present.
package credentials
