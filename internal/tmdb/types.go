package tmdb

// Media types accepted by the client.
const (
	MediaMovie = "movie"
	MediaTV    = "tv"
)

// Media is a list entry as returned by list, discover and search endpoints.
// Movies carry Title and ReleaseDate, TV shows Name and FirstAirDate.
type Media struct {
	ID           int      `json:"id"`
	MediaType    string   `json:"media_type,omitempty"`
	Title        string   `json:"title,omitempty"`
	Name         string   `json:"name,omitempty"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	Overview     string   `json:"overview"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	FirstAirDate string   `json:"first_air_date,omitempty"`
	VoteAverage  *float64 `json:"vote_average"`
	VoteCount    int      `json:"vote_count"`
	GenreIDs     []int    `json:"genre_ids,omitempty"`
}

// DisplayTitle returns Title for movies and Name for TV shows.
func (m Media) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Date returns the release date, or the first air date for TV shows.
func (m Media) Date() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// Rating returns the vote average, treating an absent rating as 0.
func (m Media) Rating() float64 {
	if m.VoteAverage == nil {
		return 0
	}
	return *m.VoteAverage
}

// Page is one page of a paginated result set.
type Page struct {
	Page         int     `json:"page"`
	Results      []Media `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details is the full record of a movie or TV show.
type Details struct {
	Media
	Genres           []Genre `json:"genres"`
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	Homepage         string  `json:"homepage"`
	Runtime          int     `json:"runtime"`
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	EpisodeRunTime   []int   `json:"episode_run_time"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
}

// RuntimeMinutes returns the movie runtime or the first episode runtime.
func (d Details) RuntimeMinutes() int {
	if d.Runtime > 0 {
		return d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 {
		return d.EpisodeRunTime[0]
	}
	return 0
}

// CastMember is one cast credit.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits holds cast and crew.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a trailer, teaser or clip hosted on an external site.
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// Keyword is a TMDB keyword.
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExternalIDs links a record to other databases.
type ExternalIDs struct {
	IMDBID      string `json:"imdb_id"`
	WikidataID  string `json:"wikidata_id"`
	FacebookID  string `json:"facebook_id"`
	InstagramID string `json:"instagram_id"`
	TwitterID   string `json:"twitter_id"`
}

// Provider is a streaming, rental or purchase service.
type Provider struct {
	ID              int    `json:"provider_id"`
	Name            string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// RegionProviders lists the services offering a title in one region.
type RegionProviders struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate"`
	Rent     []Provider `json:"rent"`
	Buy      []Provider `json:"buy"`
}

// Empty reports whether no service offers the title.
func (r RegionProviders) Empty() bool {
	return len(r.Flatrate) == 0 && len(r.Rent) == 0 && len(r.Buy) == 0
}
