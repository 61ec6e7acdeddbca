// Package schema defines the star schema: the songplays fact table and the
// users, songs, artists and time dimensions.
//
// Tables are created in dependency order and dropped in reverse. The link
// from songs.artist_id to artists is not enforced, so catalog files can be
// loaded in any order.
package schema
