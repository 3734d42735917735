/*
 * doc.go, part of gocryo.
 *
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 *
 */

/*Package cryoplot draws quick looks at scattering potentials: the
central slice of a volume or of any grid-backed potential as a heat
map, and the spherically averaged radial profile as a line plot, all
saved as png files. Nothing here is meant for figures in a paper; the
point is to eyeball a potential in a couple of lines while working.
*/
package cryoplot
