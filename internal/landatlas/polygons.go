package landatlas

import "github.com/MeKo-Tech/shiproute/internal/types"

// landPolygon is a named closed-loop land boundary, coordinates given as
// (lat, lon) in the order the atlas was surveyed, matching the source
// coastline table region by region.
type landPolygon struct {
	name    string
	vertices []types.Coordinate
}

func ll(lat, lon float64) types.Coordinate { return types.Coordinate{Lat: lat, Lon: lon} }

// defaultAtlas is the fixed polygon land atlas: simplified coastlines for
// the continents and major islands bordering the Indian Ocean and
// Southeast Asian shipping lanes, including the straits (Malacca,
// Singapore) left deliberately open between neighboring polygons.
func defaultAtlas() []landPolygon {
	return []landPolygon{
		{
			name: "africa",
			vertices: []types.Coordinate{
				ll(37.5, -7.0), ll(36.5, -6.0), ll(35.5, -5.0), ll(34.0, -4.0),
				ll(32.0, 0.0), ll(30.5, 5.0), ll(29.0, 10.0), ll(28.0, 15.0),
				ll(28.5, 33.0), ll(28.0, 34.5), ll(27.5, 35.0), ll(27.0, 34.0),
				ll(27.5, 32.0), ll(28.0, 31.0),
				ll(20.0, 40.0), ll(10.0, 40.5), ll(0.0, 40.0), ll(-5.0, 38.0),
				ll(-10.0, 35.0), ll(-15.0, 30.0), ll(-20.0, 25.0), ll(-25.0, 20.0),
				ll(-30.0, 16.0), ll(-33.0, 18.0), ll(-34.0, 20.0), ll(-34.5, 22.0),
				ll(-34.0, 25.0), ll(-33.0, 28.0), ll(-32.0, 30.0), ll(-30.0, 31.0),
				ll(-28.0, 32.0), ll(-25.0, 33.0), ll(-20.0, 34.0), ll(-15.0, 34.0),
				ll(-10.0, 33.0), ll(-5.0, 32.0), ll(0.0, 30.0), ll(5.0, 28.0),
				ll(10.0, 25.0), ll(15.0, 20.0), ll(20.0, 15.0), ll(25.0, 10.0),
				ll(30.0, 5.0), ll(35.0, 0.0), ll(37.5, -7.0),
			},
		},
		{
			name: "middle_east",
			vertices: []types.Coordinate{
				ll(28.0, 35.0), ll(27.5, 36.0), ll(27.0, 37.0), ll(26.5, 38.0),
				ll(26.0, 39.0), ll(25.5, 40.0), ll(25.0, 41.0), ll(24.5, 41.5),
				ll(24.0, 41.0), ll(23.5, 40.0), ll(23.0, 39.0), ll(22.5, 38.0),
				ll(22.0, 37.0), ll(21.5, 36.0), ll(21.0, 35.0), ll(21.5, 34.0),
				ll(22.0, 33.0), ll(22.5, 32.0), ll(23.0, 31.5), ll(24.0, 31.0),
				ll(25.0, 31.0), ll(26.0, 31.5), ll(27.0, 32.0), ll(28.0, 33.0),
				ll(28.0, 34.0), ll(28.0, 35.0),
			},
		},
		{
			name: "india",
			vertices: []types.Coordinate{
				ll(35.5, 74.0), ll(34.0, 75.0), ll(32.5, 75.5),
				ll(30.5, 77.5), ll(29.0, 78.5), ll(27.5, 79.5),
				ll(26.5, 88.0), ll(26.0, 90.0), ll(26.0, 92.0), ll(25.5, 93.0),
				ll(24.5, 93.5), ll(23.5, 92.5), ll(23.0, 91.0), ll(22.5, 89.5),
				ll(22.0, 88.5), ll(21.0, 88.0), ll(20.0, 86.5), ll(19.0, 85.5),
				ll(18.0, 84.0), ll(17.0, 83.2), ll(16.0, 82.5), ll(15.0, 81.8),
				ll(14.0, 81.2), ll(13.2, 80.2), ll(12.8, 80.0),
				ll(12.0, 79.5), ll(11.0, 79.0), ll(9.5, 78.3), ll(8.5, 77.5),
				ll(8.5, 76.9), ll(9.0, 76.7), ll(9.5, 76.5), ll(10.0, 76.2),
				ll(10.5, 75.9), ll(11.0, 75.6), ll(11.5, 75.3), ll(12.0, 75.0),
				ll(12.5, 74.7), ll(13.0, 74.4), ll(13.5, 74.1), ll(14.0, 73.8),
				ll(14.5, 73.6), ll(15.0, 73.4), ll(15.5, 73.2), ll(16.0, 73.1),
				ll(16.5, 73.0), ll(17.0, 72.95), ll(17.5, 72.9), ll(18.0, 72.85),
				ll(18.5, 72.8), ll(19.0, 72.75), ll(19.5, 72.7), ll(20.0, 72.65),
				ll(20.5, 72.6), ll(21.0, 72.55), ll(21.5, 72.5), ll(22.0, 72.45),
				ll(22.5, 72.4), ll(23.0, 72.2), ll(23.5, 71.8), ll(24.0, 71.2),
				ll(24.5, 70.6), ll(25.0, 70.0), ll(26.0, 69.5), ll(27.0, 69.0),
				ll(28.0, 68.7), ll(29.0, 68.5), ll(31.0, 69.0), ll(33.0, 71.0), ll(34.5, 73.0), ll(35.5, 74.0),
			},
		},
		{
			name: "sri_lanka",
			vertices: []types.Coordinate{
				ll(7.5, 80.0), ll(7.0, 81.0), ll(6.5, 81.5), ll(6.0, 81.5),
				ll(5.5, 81.0), ll(5.5, 80.0), ll(6.0, 79.5), ll(6.5, 79.5),
				ll(7.0, 79.8), ll(7.5, 80.0),
			},
		},
		{
			name: "indochina",
			vertices: []types.Coordinate{
				ll(28.0, 95.0), ll(27.0, 96.0), ll(26.0, 97.0), ll(25.0, 98.0),
				ll(24.0, 99.0), ll(23.0, 99.5), ll(22.0, 99.0), ll(21.0, 98.0),
				ll(20.0, 97.0), ll(19.0, 96.5), ll(18.0, 96.0), ll(17.0, 95.5),
				ll(16.0, 95.0), ll(15.0, 94.0), ll(14.0, 93.0), ll(13.0, 92.5),
				ll(12.0, 92.0), ll(11.0, 91.0), ll(10.0, 90.0), ll(9.0, 89.5),
				ll(8.0, 90.0), ll(9.0, 91.0), ll(10.0, 92.0), ll(11.0, 93.0),
				ll(12.0, 94.0), ll(13.0, 95.0), ll(14.0, 95.5), ll(15.0, 95.0),
				ll(16.0, 96.0), ll(17.0, 97.0), ll(18.0, 98.0), ll(19.0, 99.0),
				ll(20.0, 100.0), ll(21.0, 101.0), ll(22.0, 100.5), ll(23.0, 100.0),
				ll(24.0, 100.5), ll(25.0, 101.0), ll(26.0, 102.0), ll(27.0, 103.0),
				ll(28.0, 95.0),
			},
		},
		{
			// Western edge held east of 100.2 deg so the Strait of Malacca stays open.
			name: "malaysia_peninsula",
			vertices: []types.Coordinate{
				ll(6.8, 100.3), ll(6.5, 101.5), ll(6.0, 102.8),
				ll(5.4, 103.3), ll(4.7, 103.7), ll(4.0, 104.0), ll(3.2, 104.2),
				ll(2.5, 104.3), ll(1.9, 104.2),
				ll(1.9, 103.6), ll(2.4, 103.0), ll(3.0, 102.3),
				ll(3.7, 101.5), ll(4.5, 100.9), ll(5.3, 100.5),
				ll(6.0, 100.3), ll(6.5, 100.3), ll(6.8, 100.3),
			},
		},
		{
			// Northwestern tip held west of 99 deg so the Strait of Malacca stays open.
			name: "sumatra",
			vertices: []types.Coordinate{
				ll(5.9, 95.2), ll(5.7, 96.0), ll(5.3, 96.8), ll(4.8, 97.5),
				ll(4.2, 98.0), ll(3.5, 98.4), ll(2.8, 98.7), ll(2.0, 98.9),
				ll(1.0, 99.0), ll(0.0, 99.1), ll(-1.0, 99.2), ll(-2.0, 99.4),
				ll(-3.0, 99.8), ll(-4.0, 100.5), ll(-5.0, 101.5), ll(-5.8, 102.5),
				ll(-6.3, 103.5), ll(-6.5, 104.5),
				ll(-6.2, 105.5), ll(-5.5, 106.0), ll(-4.5, 106.0), ll(-3.5, 105.5),
				ll(-2.5, 105.0), ll(-1.5, 104.5), ll(-0.5, 104.0), ll(0.5, 103.5),
				ll(1.5, 103.0), ll(2.5, 102.5), ll(3.5, 102.0), ll(4.2, 101.0),
				ll(4.8, 100.0), ll(5.2, 99.0), ll(5.6, 98.0), ll(5.9, 97.0),
				ll(6.0, 96.0), ll(6.0, 95.5), ll(5.9, 95.2),
			},
		},
		{
			name: "java",
			vertices: []types.Coordinate{
				ll(-5.5, 105.0), ll(-6.0, 106.0), ll(-6.5, 107.0), ll(-6.8, 108.0),
				ll(-7.0, 109.0), ll(-7.0, 110.0), ll(-6.8, 111.0), ll(-6.5, 110.5),
				ll(-6.0, 109.5), ll(-5.5, 108.0), ll(-5.0, 107.0), ll(-5.0, 106.0),
				ll(-5.5, 105.0),
			},
		},
		{
			name: "borneo",
			vertices: []types.Coordinate{
				ll(-1.0, 108.0), ll(-1.5, 109.0), ll(-2.0, 110.0), ll(-2.5, 111.0),
				ll(-3.0, 111.5), ll(-3.5, 111.0), ll(-3.0, 110.0), ll(-2.5, 109.0),
				ll(-2.0, 108.5), ll(-1.5, 108.0), ll(-1.0, 108.0),
			},
		},
		{
			name: "sulawesi",
			vertices: []types.Coordinate{
				ll(-2.0, 119.0), ll(-2.5, 120.0), ll(-3.0, 120.5), ll(-3.5, 120.0),
				ll(-3.0, 119.0), ll(-2.5, 118.5), ll(-2.0, 119.0),
			},
		},
		{
			name: "philippines",
			vertices: []types.Coordinate{
				ll(18.0, 120.0), ll(17.5, 121.0), ll(16.5, 121.5), ll(15.5, 121.0),
				ll(14.5, 120.5), ll(13.5, 120.0), ll(12.5, 119.5), ll(11.5, 120.0),
				ll(10.5, 120.5), ll(10.0, 121.0), ll(11.0, 121.5), ll(12.0, 121.5),
				ll(13.0, 121.0), ll(14.0, 120.5), ll(15.0, 120.0), ll(16.0, 120.0),
				ll(17.0, 120.5), ll(18.0, 120.0),
			},
		},
		{
			name: "singapore",
			vertices: []types.Coordinate{
				ll(1.4, 103.6), ll(1.3, 103.9), ll(1.2, 103.8), ll(1.3, 103.7),
				ll(1.4, 103.6),
			},
		},
		{
			name: "png",
			vertices: []types.Coordinate{
				ll(-2.0, 130.0), ll(-3.0, 131.0), ll(-4.0, 132.0), ll(-5.0, 132.5),
				ll(-6.0, 131.0), ll(-5.5, 130.0), ll(-4.5, 129.5), ll(-3.5, 129.0),
				ll(-2.5, 129.5), ll(-2.0, 130.0),
			},
		},
		{
			name: "australia",
			vertices: []types.Coordinate{
				ll(-10.0, 113.0), ll(-11.0, 114.0), ll(-12.0, 115.0), ll(-13.0, 116.0),
				ll(-14.0, 117.0), ll(-15.0, 118.0), ll(-16.0, 119.0), ll(-17.0, 120.0),
				ll(-18.0, 120.0), ll(-19.0, 119.0), ll(-20.0, 118.0), ll(-21.0, 117.0),
				ll(-22.0, 116.0), ll(-23.0, 115.0), ll(-24.0, 114.0), ll(-25.0, 113.0),
				ll(-26.0, 112.0), ll(-27.0, 113.0), ll(-28.0, 114.0), ll(-29.0, 115.0),
				ll(-30.0, 116.0), ll(-31.0, 117.0), ll(-32.0, 118.0), ll(-33.0, 119.0),
				ll(-34.0, 120.0), ll(-35.0, 119.0), ll(-36.0, 118.0), ll(-37.0, 117.0),
				ll(-38.0, 116.0), ll(-39.0, 115.0), ll(-40.0, 114.0), ll(-41.0, 113.0),
				ll(-42.0, 112.0), ll(-43.0, 111.0), ll(-44.0, 110.0), ll(-44.0, 109.0),
				ll(-43.0, 108.0), ll(-42.0, 107.0), ll(-41.0, 106.0), ll(-40.0, 105.0),
				ll(-39.0, 104.0), ll(-38.0, 103.0), ll(-37.0, 102.0), ll(-36.0, 101.0),
				ll(-35.0, 100.0), ll(-34.0, 99.0), ll(-33.0, 98.0), ll(-32.0, 97.0),
				ll(-31.0, 96.0), ll(-30.0, 95.0), ll(-29.0, 94.0), ll(-28.0, 93.0),
				ll(-27.0, 92.0), ll(-26.0, 91.0), ll(-25.0, 90.0), ll(-24.0, 89.0),
				ll(-23.0, 88.0), ll(-22.0, 87.0), ll(-21.0, 86.0), ll(-20.0, 85.0),
				ll(-19.0, 84.0), ll(-18.0, 83.0), ll(-17.0, 82.0), ll(-16.0, 81.0),
				ll(-15.0, 80.0), ll(-14.0, 79.0), ll(-13.0, 78.0), ll(-12.0, 77.0),
				ll(-11.0, 76.0), ll(-10.0, 75.0), ll(-10.0, 113.0),
			},
		},
	}
}
