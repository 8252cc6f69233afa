// Package mechanics provides the closed-form solid mechanics models behind
// each teaching animation.
//
//   - [Mohr]: plane stress/strain transformation and Mohr's circle
//   - [PrincipalStress]: traction on a rotating plane approaching a principal direction
//   - [ShearStrain]: uniaxial stretch seen on a grid rotated by 45°
//   - [Cylinder]: Lamé solution for a thick cylinder under internal pressure
//   - [Torsion]: Saint-Venant torsion of an equilateral triangular shaft
//   - [Deformation]: homogeneous finite deformation of a cube
//
// Models implement [Configurable] so that players can tune parameters at
// runtime; all quantities are dimensionless unless stated otherwise.
package mechanics
