package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user. Assigned by the
//                 database, never changes, and is the only value bound
//                 into issued session tokens.
//  Name         – display name; also keys the upload directory for the
//                 user's profile image.
//  Email        – unique email address, stored exactly as given at
//                 registration (no case normalization).
//  PasswordHash – bcrypt hashed password. Never serialized to clients.
//  DOB          – date of birth as a free-form string (the mobile client
//                 sends ISO dates).
//  Gender       – free-form gender string.
//  ProfileImage – relative storage path or absolute URL of the profile
//                 image; nil when the user has none.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    DOB          string    // users.dob
    Gender       string    // users.gender
    ProfileImage *string   // users.profile_image (nullable)
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
