// This file is part of dmgdvi.
//
// dmgdvi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dmgdvi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dmgdvi.  If not, see <https://www.gnu.org/licenses/>.

package palette

// DefaultScheme is the index of the scheme selected when there is no saved
// preference.
const DefaultScheme = 36

// Schemes is the list of built-in colour schemes. The first five are the
// greyscale, inverted and the three handheld LCD colourings. These are
// followed by the Super Game Boy schemes and the two schemes that match the
// colours used by the online console service.
var Schemes = []Palette{
	{Name: "Black and White", Colors: [4]RGB{0xf7f3f7, 0xb5b2b5, 0x4e4c4e, 0x000000}},
	{Name: "Inverted", Colors: [4]RGB{0x000000, 0x4e4c4e, 0xb5b2b5, 0xf7f3f7}},
	{Name: "DMG", Colors: [4]RGB{0x7b8210, 0x5a7942, 0x39594a, 0x294139}},
	{Name: "Game Boy Pocket", Colors: [4]RGB{0xc6cba5, 0x8c926b, 0x4a5139, 0x181818}},
	{Name: "Game Boy Light", Colors: [4]RGB{0x00b284, 0x8c926b, 0x00694a, 0x005139}},
	{Name: "SGB 1A", Colors: [4]RGB{0xf7e3c6, 0xd6924a, 0xa52821, 0x311852}},
	{Name: "SGB 1B", Colors: [4]RGB{0xd6d3bd, 0xc6aa73, 0xad5110, 0x000000}},
	{Name: "SGB 1C", Colors: [4]RGB{0xf7baf7, 0xe79252, 0x943863, 0x393894}},
	{Name: "SGB 1D", Colors: [4]RGB{0xf7f3a5, 0xbd824a, 0xf70000, 0x521800}},
	{Name: "SGB 1E", Colors: [4]RGB{0xf7d3ad, 0x7bba7b, 0x6b8a42, 0x5a3821}},
	{Name: "SGB 1F", Colors: [4]RGB{0xd6e3f7, 0xde8a52, 0xa50000, 0x004110}},
	{Name: "SGB 1G", Colors: [4]RGB{0x000052, 0x009ae7, 0x7b7900, 0xf7f35a}},
	{Name: "SGB 1H", Colors: [4]RGB{0xf7e3de, 0xf7b28c, 0x844100, 0x311800}},
	{Name: "SGB 2A", Colors: [4]RGB{0xefc39c, 0xbd8a4a, 0x297900, 0x000000}},
	{Name: "SGB 2B", Colors: [4]RGB{0xf7f3f7, 0xf7e352, 0xf73000, 0x52005a}},
	{Name: "SGB 2C", Colors: [4]RGB{0xf7f3f7, 0xe78a8c, 0x7b30e7, 0x292894}},
	{Name: "SGB 2D", Colors: [4]RGB{0xf7f39c, 0x00f300, 0xf73000, 0x000052}},
	{Name: "SGB 2E", Colors: [4]RGB{0xf7c384, 0x94aade, 0x291063, 0x100810}},
	{Name: "SGB 2F", Colors: [4]RGB{0xcef3f7, 0xf79252, 0x9c0000, 0x180000}},
	{Name: "SGB 2G", Colors: [4]RGB{0x6bb239, 0xde5142, 0xdeb284, 0x001800}},
	{Name: "SGB 2H", Colors: [4]RGB{0xf7f3f7, 0xb5b2b5, 0x737173, 0x000000}},
	{Name: "SGB 3A", Colors: [4]RGB{0xf7cb94, 0x73babd, 0xf76129, 0x314963}},
	{Name: "SGB 3B", Colors: [4]RGB{0xd6d3bd, 0xde8221, 0x005100, 0x001010}},
	{Name: "SGB 3C", Colors: [4]RGB{0xdea2c6, 0xf7f37b, 0x00b2f7, 0x21205a}},
	{Name: "SGB 3D", Colors: [4]RGB{0xeff3b5, 0xdea27b, 0x96ad52, 0x000000}},
	{Name: "SGB 3E", Colors: [4]RGB{0xf7f3bd, 0xdeaa6b, 0xad7921, 0x524973}},
	{Name: "SGB 3F", Colors: [4]RGB{0x7b79c6, 0xf769f7, 0xf7cb00, 0x424142}},
	{Name: "SGB 3G", Colors: [4]RGB{0x63d352, 0xf7f3f7, 0xc63039, 0x390000}},
	{Name: "SGB 3H", Colors: [4]RGB{0xdef39c, 0x7bc339, 0x4a8a18, 0x081800}},
	{Name: "SGB 4A", Colors: [4]RGB{0xefa26b, 0x7ba2f7, 0xce00ce, 0x00007b}},
	{Name: "SGB 4B", Colors: [4]RGB{0xefe3ef, 0xe79a63, 0x427939, 0x180808}},
	{Name: "SGB 4C", Colors: [4]RGB{0xf7dbde, 0xf7f37b, 0x949ade, 0x080000}},
	{Name: "SGB 4D", Colors: [4]RGB{0xf7f3b5, 0x94c3c6, 0x4a697b, 0x08204a}},
	{Name: "SGB 4E", Colors: [4]RGB{0xf7d3a5, 0xdea27b, 0x7b598c, 0x002031}},
	{Name: "SGB 4F", Colors: [4]RGB{0xb5cbce, 0xd682d6, 0x84009c, 0x390000}},
	{Name: "SGB 4G", Colors: [4]RGB{0xaddb18, 0xb5205a, 0x291000, 0x008263}},
	{Name: "SGB 4H", Colors: [4]RGB{0xf7f3c6, 0xb5ba5a, 0x848a42, 0x425129}},
	{Name: "DMG NSO", Colors: [4]RGB{0x8cad28, 0x6c9421, 0x426b29, 0x214231}},
	{Name: "GBP NSO", Colors: [4]RGB{0xb5c69c, 0x8d9c7b, 0x6c7251, 0x303820}},
}
