// Package models holds the persisted entities. All ids are server-generated
// UUID strings used as the document _id.
package models

import (
	"time"
)

type Role string

const (
	RoleTenant   Role = "TENANT"
	RoleLandlord Role = "LANDLORD"
)

type SwipeAction string

const (
	SwipeAccept SwipeAction = "ACCEPT"
	SwipeReject SwipeAction = "REJECT"
)

type MatchStatus string

const (
	MatchActive   MatchStatus = "ACTIVE"
	MatchArchived MatchStatus = "ARCHIVED"
)

type RoomStatus string

const (
	RoomDraft     RoomStatus = "DRAFT"
	RoomPublished RoomStatus = "PUBLISHED"
	RoomArchived  RoomStatus = "ARCHIVED"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Account is the identity shared by tenants and landlords. Tenant and
// Landlord embed it inline, so tenant and landlord documents carry these
// fields at the top level of their own collections.
type Account struct {
	ID          string    `bson:"_id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password" json:"-"`
	Name        string    `bson:"name" json:"name"`
	Phone       string    `bson:"phone" json:"phone"`
	AvatarURL   string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Role        Role      `bson:"role" json:"role"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Tenant struct {
	Account `bson:",inline"`

	BudgetPerMonth     *int64     `bson:"budgetPerMonth,omitempty" json:"budgetPerMonth,omitempty"`
	StayLengthMonths   *int       `bson:"stayLengthMonths,omitempty" json:"stayLengthMonths,omitempty"`
	MoveInDate         *time.Time `bson:"moveInDate,omitempty" json:"moveInDate,omitempty"`
	PreferredDistricts []string   `bson:"preferredDistricts,omitempty" json:"preferredDistricts,omitempty"`
	Age                *int       `bson:"age,omitempty" json:"age,omitempty"`
	Gender             Gender     `bson:"gender,omitempty" json:"gender,omitempty"`
	Smoking            bool       `bson:"smoking" json:"smoking"`
	Cooking            bool       `bson:"cooking" json:"cooking"`
	NeedWindow         bool       `bson:"needWindow" json:"needWindow"`
	MightShareBedRoom  bool       `bson:"mightShareBedRoom" json:"mightShareBedRoom"`
	MightShareToilet   bool       `bson:"mightShareToilet" json:"mightShareToilet"`
}

type Landlord struct {
	Account `bson:",inline"`
}

type Room struct {
	ID                string     `bson:"_id" json:"id"`
	LandlordID        string     `bson:"landlordId" json:"landlordId"`
	Title             string     `bson:"title" json:"title"`
	Description       string     `bson:"description,omitempty" json:"description,omitempty"`
	ThumbnailURL      string     `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	ImageURLs         []string   `bson:"imageUrls,omitempty" json:"imageUrls,omitempty"`
	VideoURLs         []string   `bson:"videoUrls,omitempty" json:"videoUrls,omitempty"`
	DocumentURLs      []string   `bson:"documentUrls,omitempty" json:"documentUrls,omitempty"`
	RentPricePerMonth int64      `bson:"rentPricePerMonth" json:"rentPricePerMonth"`
	MinimumStayMonths int        `bson:"minimumStayMonths" json:"minimumStayMonths"`
	Address           string     `bson:"address" json:"address"`
	Latitude          float64    `bson:"latitude" json:"latitude"`
	Longitude         float64    `bson:"longitude" json:"longitude"`
	NumberOfToilets   int        `bson:"numberOfToilets" json:"numberOfToilets"`
	NumberOfBedRooms  int        `bson:"numberOfBedRooms" json:"numberOfBedRooms"`
	HasWindow         bool       `bson:"hasWindow" json:"hasWindow"`
	Status            RoomStatus `bson:"status" json:"status"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Swipe is immutable once created. At most one swipe exists per ordered
// (swiperId, targetId) pair.
type Swipe struct {
	ID        string      `bson:"_id" json:"id"`
	SwiperID  string      `bson:"swiperId" json:"swiperId"`
	TargetID  string      `bson:"targetId" json:"targetId"`
	Action    SwipeAction `bson:"action" json:"action"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
}

// Match records mutual acceptance between two tenants. PairKey is the
// sorted pair of tenant ids and is unique, so a pair can match at most once
// no matter which direction completed it.
type Match struct {
	ID             string      `bson:"_id" json:"id"`
	Tenant1ID      string      `bson:"tenant1Id" json:"tenant1Id"`
	Tenant2ID      string      `bson:"tenant2Id" json:"tenant2Id"`
	PairKey        string      `bson:"pairKey" json:"-"`
	ConversationID string      `bson:"conversationId" json:"conversationId"`
	Status         MatchStatus `bson:"status" json:"status"`
	CreatedAt      time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// PairKey builds the deterministic unordered-pair key for two tenant ids.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

type Conversation struct {
	ID             string     `bson:"_id" json:"id"`
	ParticipantIDs []string   `bson:"participantIds" json:"participantIds"`
	LastMessage    string     `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	LastMessageAt  *time.Time `bson:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID. Conversations
// always have exactly two participants.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, id := range c.ParticipantIDs {
		if id != userID {
			return id
		}
	}
	return ""
}

// Message is append-only. ReadBy starts with the sender.
type Message struct {
	ID             string    `bson:"_id" json:"id"`
	ConversationID string    `bson:"conversationId" json:"conversationId"`
	SenderID       string    `bson:"senderId" json:"senderId"`
	Content        string    `bson:"content" json:"content"`
	MediaURLs      []string  `bson:"mediaUrls,omitempty" json:"mediaUrls,omitempty"`
	ReadBy         []string  `bson:"readBy" json:"readBy"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

type Bookmark struct {
	ID        string    `bson:"_id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	RoomID    string    `bson:"roomId" json:"roomId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
