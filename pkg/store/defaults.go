package store

// DefaultSongManifest is the built-in list of song ids used when the remote
// catalog summary cannot be fetched. It mirrors the published body of work
// and lets the catalog degrade to a full fan-out load instead of failing.
var DefaultSongManifest = []string{
	"a_song_and_a_beer", "backroad_heart", "be_better_for_the_next_guy",
	"blackberry_creek_blues", "blackberry_creek_revival", "born_in_hell",
	"broken_hallelujah", "canyons_cry", "church_of_country", "coal_dust_on_the_lamb",
	"coal_dust_sunrise", "country_city_girl", "devil_came_back_for_georgia",
	"digital_bonfire", "diner_life", "drink_to_the_family", "drivin_to_you",
	"embers_to_inferno", "empty_seat", "faded_mountain_truths", "feels_like_home",
	"forever_happy", "friday_night_lights_in_honky_tonk_heaven", "full_and_gone",
	"georgia_makes_the_devil_her_toy", "get_it_on", "gimme_that_black_brew",
	"going_viral", "going_viral_2", "guilt_and_grief", "hell_and_hymns",
	"heres_to_the_ghosts_i_leave_behind", "hollow_turns_hallelujah",
	"i_raised_myself", "if_youre_breathing_youre_worth_saving",
	"it_took_losing_you_to_find_me", "keep_singin_on", "keep_singing_on",
	"kentucky_steel", "lantern_i_left_behind", "love_aint_enough",
	"mamma_make_him_stop", "miles_of_heartache", "miles_of_sorrow",
	"morning_after_rain", "my_kentucky_heartbeat", "my_mothers_eyes",
	"phoenix_flight", "red_dirt_road", "roots_torn_slow", "run_from_the_reaper",
	"running_free", "runnin_late_to_church", "saturday_night_salvation",
	"scars_and_smoke", "shadows_holler", "skin_on_mine", "sometimes_cowboys_stay",
	"soul_food", "sound_of_silence", "taco_town", "tailgate_nights",
	"tailgate_testament", "that_good_ol_90s_country", "the_devil_went_down_on_georgia",
	"the_girl_in_the_summer_dress", "the_mourning_after", "the_music",
	"the_reveal", "the_road_to_nashville", "the_songs_that_saved_me",
	"the_way_you_make_me_feel", "the_weight_of_silence", "through_the_silence",
	"through_the_silence_2", "tumbleweed_promises", "under_a_southern_sky",
	"what_dad_left_behind", "when_mountains_weep", "when_you_cant_be_near_me",
	"whiskey_dont_lie", "whispers_from_the_hemlock_holler", "wild_la",
	"wildflower_heart", "workin_for_a_living", "yes_boys_do_cry_sometimes",
}

// DefaultThemes is the fixed set of theme index files fetched during a load.
var DefaultThemes = []string{
	"bar_setting", "nostalgia", "partying_celebration",
	"abuse_trauma", "faith_spirituality", "family",
	"freedom_wandering", "heartbreak_loss", "hometown_roots",
	"love_romance", "music_songwriting", "nature_outdoors",
	"rebellion_outlaw", "resilience_survival", "working_class_labor",
}

// DefaultVenues is the fixed set of venue index files fetched during a load.
var DefaultVenues = []string{
	"arena", "bar_setting", "church", "dive_bar", "revival", "stadium",
	"amphitheater", "coffee_shop", "festival", "honky_tonk", "house_concert",
	"listening_room", "outdoor_venue", "roadhouse", "small_theater",
}
