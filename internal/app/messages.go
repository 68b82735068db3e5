package app

import (
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

// Msg is a worker-to-app message. Workers never touch app state directly;
// they post one of these into the queue and the app loop applies it while
// draining.
type Msg interface {
	isMsg()
}

type accessTokenSet struct{}

type newVersionAvailable struct {
	Tag string
}

type currentUserLoaded struct {
	User steamapi.User
}

type friendsLoaded struct {
	Roster  []steamapi.User
	Regions []string
}

type friendsLoadFailed struct {
	Err error
}

type friendsLoadProgress struct {
	Progress float32
}

type giveawayDetailsLoaded struct {
	Details *steamapi.StoreItemUserDetails
}

type hasAppDetailsLoaded struct {
	ItemID  steamapi.StoreItemID
	Details *steamapi.StoreItemUserDetails
}

func (accessTokenSet) isMsg()        {}
func (newVersionAvailable) isMsg()   {}
func (currentUserLoaded) isMsg()     {}
func (friendsLoaded) isMsg()         {}
func (friendsLoadFailed) isMsg()     {}
func (friendsLoadProgress) isMsg()   {}
func (giveawayDetailsLoaded) isMsg() {}
func (hasAppDetailsLoaded) isMsg()   {}
